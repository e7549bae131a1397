package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sontallive/envhub/internal/cli"
)

func TestMaskValue_PlainKeysUntouched(t *testing.T) {
	assert.Equal(t, "us-east-1", cli.MaskValue("REGION", "us-east-1"))
	assert.Equal(t, "debug", cli.MaskValue("LOG_LEVEL", "debug"))
}

func TestMaskValue_SecretKeysMasked(t *testing.T) {
	masked := cli.MaskValue("API_TOKEN", "sk-abcdefghijklmnop")
	assert.NotContains(t, masked, "abcdefghijklmnop")
	assert.Contains(t, masked, "*")

	// Short secrets are masked entirely.
	assert.Equal(t, "******", cli.MaskValue("PASSWORD", "hunter"))
}

func TestMaskValue_CaseInsensitiveKeyMatch(t *testing.T) {
	assert.Contains(t, cli.MaskValue("aws_secret_access_key", "0123456789abcdef"), "*")
}
