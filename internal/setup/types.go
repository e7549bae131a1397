// Package setup implements the guided registration wizard the admin CLI
// offers as `envhub wizard`: a short sequence of forms, not a full-screen
// dashboard. Production wiring uses charmbracelet/huh; tests substitute a
// scripted FormRunner so the flow can be exercised without a terminal.
package setup

// Action is the operation the user picks when the wizard finds apps
// already registered.
type Action string

const (
	ActionRegister   Action = "register"
	ActionEditVars   Action = "edit_vars"
	ActionUnregister Action = "unregister"
)

// RegistrationInput collects everything register_app plus an initial
// round of variable edits need for one new alias.
type RegistrationInput struct {
	Alias        string
	TargetBinary string
	InstallMode  string // "global" or "user"
	EnvVars      []EnvVarInput
}

// EnvVarInput is one key/value pair the user entered for the new
// alias's default profile.
type EnvVarInput struct {
	Key   string
	Value string
}

// FormRunner abstracts the wizard's interactive surface. Production code
// uses HuhFormRunner; tests use a scripted stand-in.
type FormRunner interface {
	// RunRegistrationForm collects an alias, target binary, and install
	// mode for a brand new registration. existingAliases is used for
	// duplicate-name validation.
	RunRegistrationForm(existingAliases []string) (*RegistrationInput, error)

	// RunEnvVarForm collects one environment variable key/value pair.
	RunEnvVarForm() (EnvVarInput, error)

	// RunAddMore asks a yes/no question about repeating the previous step.
	RunAddMore(prompt string) (bool, error)

	// RunActionSelect offers a choice among the wizard's top-level actions.
	RunActionSelect() (Action, error)

	// RunAliasSelect lets the user pick one of the already-registered
	// aliases.
	RunAliasSelect(aliases []string) (string, error)

	// RunConfirm shows a yes/no confirmation for a destructive action.
	RunConfirm(message string) (bool, error)
}
