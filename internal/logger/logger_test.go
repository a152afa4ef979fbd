package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("upstream request", "op", "GET /v1beta/models")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="upstream request"`)
	assert.Contains(t, out, `op="GET /v1beta/models"`)
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")

	assert.Empty(t, buf.String())
}

func TestInfoWarnError(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("started", "addr", "0.0.0.0:8000")
	Warn("retrying", "attempt", 1)
	Error("failed", "status", 500)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "attempt=1")
}

func TestSetLevel(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	require.NoError(t, SetLevel("warn"))
	Info("dropped")
	Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	require.NoError(t, SetLevel("DEBUG"))
	assert.True(t, IsVerbose())

	assert.Error(t, SetLevel("loud"))
}

func TestRedaction(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("config", "api_key", "AIza-secret-value", "authorization", "Bearer x", "host", "localhost")

	out := buf.String()
	assert.NotContains(t, out, "AIza-secret-value")
	assert.NotContains(t, out, "Bearer x")
	assert.Contains(t, out, "api_key=[REDACTED]")
	assert.Contains(t, out, "host=localhost")
}

func TestIsSensitiveKey(t *testing.T) {
	assert.True(t, IsSensitiveKey("GOOGLE_API_KEY"))
	assert.True(t, IsSensitiveKey("page_token"))
	assert.True(t, IsSensitiveKey("client_secret"))
	assert.False(t, IsSensitiveKey("store_id"))
}
