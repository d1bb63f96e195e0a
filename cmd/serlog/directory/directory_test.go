package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetUserConfigPathEnvOverride(t *testing.T) {
	t.Setenv(UserConfigPathEnv, "/tmp/serlog-test/config.yaml")

	path, err := GetUserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/serlog-test/config.yaml", path)
}

func Test_WriteAndReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv(UserConfigPathEnv, path)

	cfg, err := GetUserConfig()
	require.NoError(t, err)
	cfg.Set("port", "/dev/ttyUSB0")
	cfg.Set("baud", 115200)
	require.NoError(t, WriteConfig(cfg))

	// The temp file used for the atomic write must be gone.
	_, err = os.Stat(filepath.Join(filepath.Dir(path), ".config.tmp.yaml"))
	assert.True(t, os.IsNotExist(err))

	reread, err := GetUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", reread.GetString("port"))
	assert.Equal(t, 115200, reread.GetInt("baud"))
}
