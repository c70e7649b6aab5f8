package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "bachelorious", "info")
	log.Debug().Msg("hidden")
	log.Info().Str("listing_id", "1").Msg("listing created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "bachelorious", line["service"])
	assert.Equal(t, "listing created", line["message"])
	assert.Equal(t, "1", line["listing_id"])
	assert.Contains(t, line, "time")
}

func TestUnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "bachelorious", "chatty")
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
	log.Warn().Msg("shown")
	assert.NotEmpty(t, buf.String())
}
