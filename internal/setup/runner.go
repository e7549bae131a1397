package setup

import (
	"fmt"

	"github.com/sontallive/envhub/internal/library"
)

// Runner is the entry point for the interactive wizard.
type Runner struct {
	StatePath    string
	LauncherPath string
	FormRunner   FormRunner
}

// Run drives the wizard to completion: straight into registration if
// nothing is registered yet, otherwise an action menu.
func (r *Runner) Run() error {
	aliases, err := library.ListApps(r.StatePath)
	if err != nil {
		return err
	}
	if len(aliases) == 0 {
		fmt.Println("No aliases registered yet. Let's add one.")
		return r.register(aliases)
	}

	action, err := r.FormRunner.RunActionSelect()
	if err != nil {
		return err
	}
	switch action {
	case ActionRegister:
		return r.register(aliases)
	case ActionEditVars:
		return r.editVars(aliases)
	case ActionUnregister:
		return r.unregister(aliases)
	default:
		return fmt.Errorf("setup: unknown action %q", action)
	}
}

func (r *Runner) register(existing []string) error {
	input, err := r.FormRunner.RunRegistrationForm(existing)
	if err != nil {
		return err
	}

	mode := library.ModeUser
	if input.InstallMode == "global" {
		mode = library.ModeGlobal
	}
	dir, err := library.DefaultInstallDir(mode)
	if err != nil {
		return err
	}

	if err := library.RegisterApp(r.StatePath, input.Alias, input.TargetBinary, r.LauncherPath, dir); err != nil {
		return err
	}
	fmt.Printf("Registered %q -> %s\n", input.Alias, input.TargetBinary)

	for {
		v, err := r.FormRunner.RunEnvVarForm()
		if err != nil {
			return err
		}
		if err := library.SetProfileEnv(r.StatePath, input.Alias, "default", v.Key, v.Value); err != nil {
			return err
		}
		more, err := r.FormRunner.RunAddMore("Add another variable?")
		if err != nil || !more {
			return err
		}
	}
}

func (r *Runner) editVars(aliases []string) error {
	alias, err := r.FormRunner.RunAliasSelect(aliases)
	if err != nil {
		return err
	}
	profile, err := library.ActiveProfile(r.StatePath, alias)
	if err != nil {
		return err
	}
	if profile == "" {
		profile = "default"
	}
	for {
		v, err := r.FormRunner.RunEnvVarForm()
		if err != nil {
			return err
		}
		if err := library.SetProfileEnv(r.StatePath, alias, profile, v.Key, v.Value); err != nil {
			return err
		}
		more, err := r.FormRunner.RunAddMore("Set another variable?")
		if err != nil || !more {
			return err
		}
	}
}

func (r *Runner) unregister(aliases []string) error {
	alias, err := r.FormRunner.RunAliasSelect(aliases)
	if err != nil {
		return err
	}
	confirmed, err := r.FormRunner.RunConfirm(fmt.Sprintf("Really unregister %q?", alias))
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := library.UnregisterApp(r.StatePath, alias); err != nil {
		return err
	}
	fmt.Printf("Unregistered %q\n", alias)
	return nil
}
