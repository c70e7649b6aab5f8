package respond

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OK(&buf, nil))

	var env map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, float64(http.StatusOK), env["status"])
	assert.Equal(t, map[string]any{}, env["body"])
	assert.Nil(t, env["error"])
}

func TestAbort(t *testing.T) {
	var buf bytes.Buffer
	err := NotFound(&buf, "listing not found")
	require.ErrorIs(t, err, ErrAborted)

	var env Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, http.StatusNotFound, env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "listing not found", *env.Error)
}
