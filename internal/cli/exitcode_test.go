package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sontallive/envhub/internal/cli"
	"github.com/sontallive/envhub/internal/envherr"
)

func TestMapExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want cli.ExitCode
	}{
		{nil, cli.ExitSuccess},
		{envherr.New(envherr.NotFound, "x"), cli.ExitNotFound},
		{envherr.New(envherr.AlreadyExists, "x"), cli.ExitAlreadyExists},
		{envherr.New(envherr.Permission, "x"), cli.ExitPermission},
		{envherr.New(envherr.PathNotOnPath, "x"), cli.ExitPathNotOnPath},
		{envherr.New(envherr.IoError, "x"), cli.ExitIO},
		{envherr.New(envherr.ParseError, "x"), cli.ExitParse},
		{errors.New("unclassified"), cli.ExitGeneral},
		{fmt.Errorf("wrapped: %w", envherr.New(envherr.NotFound, "x")), cli.ExitNotFound},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, cli.MapExitCode(c.err))
	}
}
