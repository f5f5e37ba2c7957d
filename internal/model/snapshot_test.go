package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptySnapshotsEncodeWithoutNulls(t *testing.T) {
	full, err := json.Marshal(EmptyFull())
	require.NoError(t, err)
	assert.NotContains(t, string(full), "null")

	live, err := json.Marshal(EmptyLive())
	require.NoError(t, err)
	assert.NotContains(t, string(live), "null")
	assert.True(t, strings.Contains(string(live), `"layout":[]`))
}

func TestFullSnapshotFieldNames(t *testing.T) {
	raw, err := json.Marshal(EmptyFull())
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{
		"staticData", "cpu", "cpuCurrentSpeed", "currentLoad", "cpuTemperature",
		"graphics", "network", "storage", "memory", "audio", "peripherals",
		"optical", "runtime",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Len(t, fields, 13)
}
