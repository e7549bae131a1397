package cmdexec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sontallive/envhub/internal/cmdexec"
	"github.com/sontallive/envhub/internal/testutil"
)

func TestRun_ExactEnvironment(t *testing.T) {
	dir := testutil.TempBinDir(t)
	script := testutil.MakeExecutable(t, dir, "printer", `echo "$ONLY"`)

	out, code, err := cmdexec.OSRunner{}.Run(context.Background(),
		[]string{script}, []string{"ONLY=visible"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "visible\n", string(out))
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	dir := testutil.TempBinDir(t)
	script := testutil.MakeExecutable(t, dir, "failer", "exit 3")

	_, code, err := cmdexec.OSRunner{}.Run(context.Background(), []string{script}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestRun_MissingBinary(t *testing.T) {
	_, code, err := cmdexec.OSRunner{}.Run(context.Background(),
		[]string{"/no/such/binary"}, nil)
	assert.Error(t, err)
	assert.Equal(t, -1, code)
}
