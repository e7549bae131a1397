package envherr_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sontallive/envhub/internal/envherr"
)

func TestError_MessageIncludesCodeAndCause(t *testing.T) {
	cause := fs.ErrPermission
	err := envherr.Wrap(envherr.Permission, "cannot write /usr/local/bin", cause)

	assert.Contains(t, err.Error(), "permission")
	assert.Contains(t, err.Error(), "cannot write /usr/local/bin")
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := envherr.New(envherr.NotFound, "app \"x\" is not registered")

	assert.True(t, envherr.Is(err, envherr.NotFound))
	assert.False(t, envherr.Is(err, envherr.AlreadyExists))
}

func TestIs_SeesThroughWrapping(t *testing.T) {
	inner := envherr.New(envherr.ParseError, "bad json")
	outer := fmt.Errorf("loading state: %w", inner)

	assert.True(t, envherr.Is(outer, envherr.ParseError))
	assert.Equal(t, envherr.ParseError, envherr.CodeOf(outer))
}

func TestCodeOf_NonTaxonomyError(t *testing.T) {
	assert.Equal(t, envherr.Code(""), envherr.CodeOf(errors.New("plain")))
	assert.Equal(t, envherr.Code(""), envherr.CodeOf(nil))
}

func TestWrap_UnwrapReturnsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := envherr.Wrap(envherr.IoError, "failed to save", cause)

	var e *envherr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, cause, errors.Unwrap(e))
}
