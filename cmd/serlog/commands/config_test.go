package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epdlab/serlog/cmd/serlog/directory"
)

func Test_ConfigSetAndRead(t *testing.T) {
	t.Setenv(directory.UserConfigPathEnv, filepath.Join(t.TempDir(), "config.yaml"))

	cmd := ConfigCmd()
	cmd.SetArgs([]string{"set-port", "/dev/ttyUSB0"})
	require.NoError(t, cmd.Execute())

	cmd = ConfigCmd()
	cmd.SetArgs([]string{"set-baud", "74880"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "/dev/ttyUSB0", ConfiguredPort())
	assert.Equal(t, 74880, ConfiguredBaudRate())
}

func Test_ConfigSetBaudRejectsGarbage(t *testing.T) {
	t.Setenv(directory.UserConfigPathEnv, filepath.Join(t.TempDir(), "config.yaml"))

	for _, in := range []string{"fast", "-9600", "0"} {
		cmd := ConfigCmd()
		cmd.SetArgs([]string{"set-baud", in})
		cmd.SilenceErrors = true
		assert.Error(t, cmd.Execute(), in)
	}
}

func Test_ConfiguredPortEmptyWithoutConfig(t *testing.T) {
	t.Setenv(directory.UserConfigPathEnv, filepath.Join(t.TempDir(), "config.yaml"))

	assert.Empty(t, ConfiguredPort())
	assert.Zero(t, ConfiguredBaudRate())
}
