package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", JSONOutput: true, Output: &buf})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log := WithComponent("connections")
	log.Debug().Str("connection_id", "c1").Msg("accepted")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "connections", entry["component"])
	assert.Equal(t, "c1", entry["connection_id"])
	assert.Equal(t, "accepted", entry["message"])
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			Init(Config{Level: tt.in, JSONOutput: true, Output: &bytes.Buffer{}})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestInfoFilteredBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "error", JSONOutput: true, Output: &buf})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	Logger.Info().Msg("dropped")
	assert.Zero(t, buf.Len())
}
