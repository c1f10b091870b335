package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
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

	Debug("test message %s", "arg")

	assert.Contains(t, buf.String(), "DBG")
	assert.Contains(t, buf.String(), "test message arg")
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")

	assert.Zero(t, buf.Len())
}

func TestLevels(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetVerbose(true)
	SetOutput(&buf)

	Info("info %d", 1)
	Warn("warn %d", 2)
	Section("Search")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "info 1")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "warn 2")
	assert.Contains(t, out, "=== Search ===")
}

func TestStructuredFields(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	L().Debug().Str("session", "abc").Int("results", 3).Msg("search completed")

	out := buf.String()
	assert.Contains(t, out, "search completed")
	assert.Contains(t, out, "session=abc")
	assert.Contains(t, out, "results=3")
}

func TestSilentByDefault(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("hidden")
	Warn("hidden")
	Section("hidden")
	L().Debug().Msg("hidden")

	assert.Zero(t, buf.Len())
}
