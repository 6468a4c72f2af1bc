package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, SetLevel("info"))

	Info("bot ready")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "bot ready", line["message"])
	assert.Contains(t, line, "time")
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		expectError bool
		expectDebug bool
	}{
		{name: "debug enables debug lines", level: "debug", expectDebug: true},
		{name: "warn hides debug lines", level: "warn"},
		{name: "unknown level", level: "loud", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)
			require.NoError(t, SetLevel("info"))

			err := SetLevel(tt.level)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			Debug("detail")
			if tt.expectDebug {
				assert.Contains(t, buf.String(), "detail")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, SetLevel("info"))

	Logger().Error().Str("symbol", "BTCUSDT").Int("status", 400).Msg("request failed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "BTCUSDT", line["symbol"])
	assert.Equal(t, float64(400), line["status"])
}
