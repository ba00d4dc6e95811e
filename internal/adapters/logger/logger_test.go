package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tagger/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_PrettyLevels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Debug("hidden")
	l.Info("visible")
	l.Warn("careful")

	assert.Equal(t, "visible\n! careful\n", buf.String())

	buf.Reset()
	l.SetVerbose(true)
	l.Debug("shown")
	assert.Equal(t, "○ shown\n", buf.String())
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	l.SetJSON(true)

	l.Error(zerr.Wrap(errors.New("disk full"), "failed to write artifact"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])

	// zerr errors are logged as a group holding the message and its cause.
	group, ok := record["error"].(map[string]any)
	require.True(t, ok, "error should be a structured group, got %T", record["error"])
	assert.Equal(t, "failed to write artifact", group["msg"])
	assert.Equal(t, "disk full", group["cause"])
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	err := zerr.With(zerr.New("unknown configuration key"), "key", "batch_sise")
	l.Error(zerr.Wrap(err, "failed to load settings"))

	assert.Equal(t,
		"✗ Error: failed to load settings\n\n  Caused by:\n    → unknown configuration key\n      key: batch_sise\n",
		buf.String())
}

func TestLogger_ErrorTaskAndLocation(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	err := zerr.With(zerr.With(zerr.New("malformed row"), "file", "train.tsv"), "row", 7)
	l.Error(zerr.With(zerr.Wrap(err, "failed to read corpus"), "task", "pos"))

	assert.Equal(t,
		"✗ [pos] Error: failed to read corpus (train.tsv:7)\n\n  Caused by:\n    → malformed row\n",
		buf.String())
}
