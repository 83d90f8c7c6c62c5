package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}

	return lines
}

func TestLogger_InfoWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("noaa-test", "test", "debug", &buf)

	l.Info("calling", map[string]any{"uri": "/points/40.7128,-74.006"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "calling", lines[0]["msg"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "noaa-test", lines[0]["app_name"])
	assert.Equal(t, "test", lines[0]["app_env"])
	assert.Equal(t, "/points/40.7128,-74.006", lines[0]["uri"])
	assert.Contains(t, lines[0]["caller_file"], "zaplogger_test.go")
	assert.NotEmpty(t, lines[0]["timestamp"])
}

func TestLogger_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("noaa-test", "test", "warn", &buf)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warning("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["msg"])
}

func TestLogger_ErrorCarriesErrorAndStack(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("noaa-test", "test", "", &buf)

	l.Error(errors.New("boom"), map[string]any{"station": "KNYC"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "boom", lines[0]["error"])
	assert.Equal(t, "KNYC", lines[0]["station"])
	assert.NotEmpty(t, lines[0]["stack"])
}

func TestLogger_LogKeyvals(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger("noaa-test", "test", "info", &buf)

	require.NoError(t, l.Log("status", 200, "dangling"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 200, lines[0]["status"])
	assert.NotContains(t, lines[0], "dangling")
}

func TestNewNop(t *testing.T) {
	l := NewNop()

	assert.NotPanics(t, func() {
		l.Info("nothing")
		l.Error(errors.New("nothing"))
	})
}
