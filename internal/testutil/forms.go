package testutil

import (
	"fmt"

	"github.com/sontallive/envhub/internal/setup"
)

// ScriptedForms is a setup.FormRunner whose answers are queued up front,
// so wizard flows can be exercised without a terminal. Each Run* call
// consumes the next queued value of its kind; running out of answers
// fails the flow with an error rather than blocking.
type ScriptedForms struct {
	Registrations []*setup.RegistrationInput
	EnvVars       []setup.EnvVarInput
	AddMore       []bool
	Actions       []setup.Action
	AliasPicks    []string
	Confirms      []bool
}

var _ setup.FormRunner = (*ScriptedForms)(nil)

func pop[T any](queue *[]T, kind string) (T, error) {
	var zero T
	if len(*queue) == 0 {
		return zero, fmt.Errorf("ScriptedForms: no %s answer queued", kind)
	}
	v := (*queue)[0]
	*queue = (*queue)[1:]
	return v, nil
}

func (s *ScriptedForms) RunRegistrationForm([]string) (*setup.RegistrationInput, error) {
	return pop(&s.Registrations, "registration")
}

func (s *ScriptedForms) RunEnvVarForm() (setup.EnvVarInput, error) {
	return pop(&s.EnvVars, "env var")
}

func (s *ScriptedForms) RunAddMore(string) (bool, error) {
	return pop(&s.AddMore, "add-more")
}

func (s *ScriptedForms) RunActionSelect() (setup.Action, error) {
	return pop(&s.Actions, "action")
}

func (s *ScriptedForms) RunAliasSelect([]string) (string, error) {
	return pop(&s.AliasPicks, "alias pick")
}

func (s *ScriptedForms) RunConfirm(string) (bool, error) {
	return pop(&s.Confirms, "confirm")
}
