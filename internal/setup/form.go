package setup

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/huh"
)

// HuhFormRunner is the charmbracelet/huh-backed FormRunner used outside
// of tests.
type HuhFormRunner struct{}

var _ FormRunner = (*HuhFormRunner)(nil)

var aliasNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

func (h *HuhFormRunner) RunRegistrationForm(existingAliases []string) (*RegistrationInput, error) {
	input := &RegistrationInput{InstallMode: "user"}

	aliasValidate := func(s string) error {
		if s == "" {
			return fmt.Errorf("enter an alias name")
		}
		if !aliasNameRegex.MatchString(s) {
			return fmt.Errorf("alias may only contain letters, digits, '-' and '_'")
		}
		for _, n := range existingAliases {
			if n == s {
				return fmt.Errorf("alias %q is already registered", s)
			}
		}
		return nil
	}

	fields := []huh.Field{
		huh.NewInput().Title("Alias").Description("the command name you'll type").Value(&input.Alias).Validate(aliasValidate),
		huh.NewInput().Title("Target binary").Description("bare command name or absolute path").Value(&input.TargetBinary).Validate(huh.ValidateNotEmpty()),
		huh.NewSelect[string]().
			Title("Install mode").
			Options(
				huh.NewOption("User (~/.local/bin)", "user"),
				huh.NewOption("Global (/usr/local/bin)", "global"),
			).
			Value(&input.InstallMode),
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("setup.RunRegistrationForm: %w", err)
	}
	return input, nil
}

func (h *HuhFormRunner) RunEnvVarForm() (EnvVarInput, error) {
	var v EnvVarInput
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Variable name").Value(&v.Key).Validate(huh.ValidateNotEmpty()),
		huh.NewInput().Title("Value").Value(&v.Value),
	))
	if err := form.Run(); err != nil {
		return EnvVarInput{}, fmt.Errorf("setup.RunEnvVarForm: %w", err)
	}
	return v, nil
}

func (h *HuhFormRunner) RunAddMore(prompt string) (bool, error) {
	return h.RunConfirm(prompt)
}

func (h *HuhFormRunner) RunActionSelect() (Action, error) {
	var action Action
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[Action]().
			Title("What would you like to do?").
			Options(
				huh.NewOption("Register a new alias", ActionRegister),
				huh.NewOption("Edit an alias's variables", ActionEditVars),
				huh.NewOption("Unregister an alias", ActionUnregister),
			).
			Value(&action),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("setup.RunActionSelect: %w", err)
	}
	return action, nil
}

func (h *HuhFormRunner) RunAliasSelect(aliases []string) (string, error) {
	var selected string
	options := make([]huh.Option[string], len(aliases))
	for i, a := range aliases {
		options[i] = huh.NewOption(a, a)
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Which alias?").Options(options...).Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("setup.RunAliasSelect: %w", err)
	}
	return selected, nil
}

func (h *HuhFormRunner) RunConfirm(message string) (bool, error) {
	var confirm bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(message).Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("setup.RunConfirm: %w", err)
	}
	return confirm, nil
}
