package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hwsnap/internal/config"
	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/runner"
)

func TestWriteJSON(t *testing.T) {
	var compact, indented bytes.Buffer
	require.NoError(t, writeJSON(&compact, model.EmptyLive(), false))
	require.NoError(t, writeJSON(&indented, model.EmptyLive(), true))

	assert.Equal(t, 1, bytes.Count(compact.Bytes(), []byte("\n")))
	assert.Contains(t, indented.String(), "\n  \"cpuCurrentSpeed\": {")
	assert.Contains(t, compact.String(), `"layout":[]`)
}

func TestCollectorOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Elevation.Wrapper = "sudo"
	cfg.Elevation.Timeout = 30 * time.Second

	opts := collectorOptions(&cfg)
	assert.Equal(t, 200*time.Millisecond, opts.Settle)
	assert.Equal(t, 5*time.Second, opts.CommandTimeout)
	assert.True(t, opts.Parallel)
	assert.Equal(t, 8, opts.Workers)
	assert.Equal(t, version, opts.Version)
	assert.True(t, opts.Elevation.Enabled)
	assert.Equal(t, "sudo", opts.Elevation.Wrapper)
	assert.Equal(t, runner.Exec{Timeout: 30 * time.Second}, opts.Elevation.Runner)

	cfg.Elevation.Enabled = false
	assert.False(t, collectorOptions(&cfg).Elevation.Enabled)
}
