package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epdlab/serlog/cmd/serlog/directory"
)

func newSessionFlagCmd(t *testing.T) *cobra.Command {
	t.Helper()
	// Point the user config at an empty file so stored settings don't leak in.
	t.Setenv(directory.UserConfigPathEnv, filepath.Join(t.TempDir(), "config.yaml"))
	cmd := &cobra.Command{Use: "test"}
	addSessionFlags(cmd)
	return cmd
}

func Test_sessionConfigDefaults(t *testing.T) {
	cmd := newSessionFlagCmd(t)
	require.NoError(t, cmd.Flags().Set("port", "/dev/ttyUSB0"))

	cfg, err := sessionConfig(cmd, nil, DefaultCaptureDuration)

	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Port)
	assert.Equal(t, DefaultBaudRate, cfg.BaudRate)
	assert.Equal(t, DefaultCaptureDuration, cfg.Duration)
	assert.False(t, cfg.Reset)
}

func Test_sessionConfigDurationOverride(t *testing.T) {
	cmd := newSessionFlagCmd(t)
	require.NoError(t, cmd.Flags().Set("port", "/dev/ttyUSB0"))

	cfg, err := sessionConfig(cmd, []string{"9"}, DefaultCaptureDuration)

	require.NoError(t, err)
	assert.Equal(t, 9*time.Second, cfg.Duration)
}

func Test_sessionConfigInvalidDuration(t *testing.T) {
	tests := []string{"abc", "-3", "0"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			cmd := newSessionFlagCmd(t)
			require.NoError(t, cmd.Flags().Set("port", "/dev/ttyUSB0"))

			_, err := sessionConfig(cmd, []string{in}, DefaultCaptureDuration)
			assert.Error(t, err)
		})
	}
}

func Test_sessionConfigRequiresPort(t *testing.T) {
	cmd := newSessionFlagCmd(t)

	_, err := sessionConfig(cmd, nil, DefaultCaptureDuration)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "set-port")
}

func Test_sessionConfigUsesStoredSettings(t *testing.T) {
	t.Setenv(directory.UserConfigPathEnv, filepath.Join(t.TempDir(), "config.yaml"))
	cfg, err := directory.GetUserConfig()
	require.NoError(t, err)
	cfg.Set(PortCfgKey, "/dev/ttyACM0")
	cfg.Set(BaudCfgKey, 9600)
	require.NoError(t, directory.WriteConfig(cfg))

	cmd := &cobra.Command{Use: "test"}
	addSessionFlags(cmd)
	got, err := sessionConfig(cmd, nil, DefaultCaptureDuration)

	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", got.Port)
	assert.Equal(t, 9600, got.BaudRate)
}

func Test_sessionConfigFlagBeatsStoredBaud(t *testing.T) {
	t.Setenv(directory.UserConfigPathEnv, filepath.Join(t.TempDir(), "config.yaml"))
	cfg, err := directory.GetUserConfig()
	require.NoError(t, err)
	cfg.Set(BaudCfgKey, 9600)
	require.NoError(t, directory.WriteConfig(cfg))

	cmd := &cobra.Command{Use: "test"}
	addSessionFlags(cmd)
	require.NoError(t, cmd.Flags().Set("port", "/dev/ttyUSB0"))
	require.NoError(t, cmd.Flags().Set("baud", "74880"))

	got, err := sessionConfig(cmd, nil, DefaultCaptureDuration)

	require.NoError(t, err)
	assert.Equal(t, 74880, got.BaudRate)
}
