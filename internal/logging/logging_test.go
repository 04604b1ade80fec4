package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "text")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("summary fetch failed", Err(errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "summary fetch failed")
	assert.Contains(t, out, "boom")
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", "json")
	require.NoError(t, err)

	logger.Debug("request", "op", "login")

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "request", record["msg"])
	assert.Equal(t, "login", record["op"])
}

func TestNewRejectsUnknownValues(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.ErrorContains(t, err, "parse log level")

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.ErrorContains(t, err, "unknown log format")
}
