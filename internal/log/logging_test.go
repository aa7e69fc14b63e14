package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLoggerSplitsConsole(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := NewLogger("debug", &stdout, &stderr, nil)

	logger.Debug("detail")
	logger.Info("progress")
	logger.Error("failure")
	logger.Log(context.Background(), LevelTrace, "hidden")

	assert.Contains(t, stdout.String(), "msg=detail")
	assert.Contains(t, stdout.String(), "msg=progress")
	assert.NotContains(t, stdout.String(), "failure")
	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stderr.String(), "msg=failure")
	assert.NotContains(t, stderr.String(), "progress")
}

func TestNewLoggerWithFile(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := NewLogger("info", nil, &stderr, &file).With("run", 1)

	logger.Info("progress")
	logger.Debug("detail")

	assert.Contains(t, stderr.String(), "msg=progress run=1")
	assert.Contains(t, file.String(), "msg=progress run=1")
	assert.NotContains(t, file.String(), "detail")
}

func TestDumper(t *testing.T) {
	var buf bytes.Buffer
	d := NewDumper(&buf)

	d.Dump("A.Designer.Extensions.cs", "line\n")
	d.Dump("B.Designer.Extensions.cs", "no newline")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "==== A.Designer.Extensions.cs (5 bytes) ====\nline\n"))
	assert.Contains(t, out, "==== B.Designer.Extensions.cs (10 bytes) ====\nno newline\n")

	NewDumper(nil).Dump("x", "y")
}
