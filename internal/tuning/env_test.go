package tuning

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"RPSBUILD_CONFIG_DIR",
	"RPSBUILD_PRESET",
	"RPSBUILD_SEED",
	"RPSBUILD_HAND_COUNT",
	"RPSBUILD_MAX_MISS",
}

// unsetEnv removes the keys for the test and restores them afterwards.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestParseEnvDefaults(t *testing.T) {
	unsetEnv(t)

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "configs", e.ConfigDir)
	assert.Equal(t, Overrides{}, e.Overrides())
}

func TestParseEnvValues(t *testing.T) {
	unsetEnv(t)
	t.Setenv("RPSBUILD_CONFIG_DIR", "/etc/rps")
	t.Setenv("RPSBUILD_PRESET", "hard")
	t.Setenv("RPSBUILD_SEED", "42")
	t.Setenv("RPSBUILD_HAND_COUNT", "5")

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, Env{ConfigDir: "/etc/rps", Preset: "hard", Seed: 42, HandCount: 5}, e)

	o := e.Overrides()
	require.NotNil(t, o.HandCount)
	assert.Equal(t, 5, *o.HandCount)
	assert.Nil(t, o.MaxMiss)
}

func TestParseEnvBadNumber(t *testing.T) {
	unsetEnv(t)
	t.Setenv("RPSBUILD_SEED", "many")
	_, err := ParseEnv()
	assert.Error(t, err)
}
