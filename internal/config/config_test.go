package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hwsnap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
settle_interval: 500ms
command_timeout: 2s
parallel: false
elevation:
  enabled: false
  wrapper: sudo
log:
  level: debug
  format: JSON
watch:
  interval: 10s
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.SettleInterval)
	assert.Equal(t, 2*time.Second, cfg.CommandTimeout)
	assert.False(t, cfg.Parallel)
	assert.False(t, cfg.Elevation.Enabled)
	assert.Equal(t, "sudo", cfg.Elevation.Wrapper)
	assert.Equal(t, 60*time.Second, cfg.Elevation.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.Watch.Interval)
	assert.Equal(t, 8, cfg.Workers)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "settle_interval: 500ms\nworkers: 2\n")
	t.Setenv("HWSNAP_SETTLE_INTERVAL", "1s")
	t.Setenv("HWSNAP_ELEVATION_ENABLED", "false")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.SettleInterval)
	assert.False(t, cfg.Elevation.Enabled)
	assert.Equal(t, 2, cfg.Workers)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("HWSNAP_COMMAND_TIMEOUT", "9s")
	fs := pflag.NewFlagSet("hwsnap", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--timeout=3s", "--no-elevate", "--sequential", "--log-level=warn"}))

	cfg, err := Load(writeConfig(t, ""), fs)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.CommandTimeout)
	assert.False(t, cfg.Elevation.Enabled)
	assert.False(t, cfg.Parallel)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 200*time.Millisecond, cfg.SettleInterval)
}

func TestUnchangedFlagsKeepLowerLayers(t *testing.T) {
	fs := pflag.NewFlagSet("hwsnap", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(writeConfig(t, "settle_interval: 1s\n"), fs)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.SettleInterval)
	assert.True(t, cfg.Elevation.Enabled)
	assert.True(t, cfg.Parallel)
}

func TestNormalize(t *testing.T) {
	cfg, err := Load(writeConfig(t, "workers: 0\ncommand_timeout: -1s\nwatch:\n  interval: 0s\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout)
	assert.Equal(t, 3*time.Second, cfg.Watch.Interval)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "settle_interval: [1, 2\n"), nil)
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "log:\n  format: xml\n"), nil)
	assert.ErrorContains(t, err, "log.format")
}
