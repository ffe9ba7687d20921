package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"trace", LevelTrace, true},
		{"debug", LevelDebug, true},
		{"info", LevelInfo, true},
		{"warn", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"fatal", LevelFatal, true},
		{"WARN", LevelWarn, true},
		{" info ", LevelInfo, true},
		{"", DefaultLevel, false},
		{"verbose", DefaultLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseLevel(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseLevel(%q)", tt.in)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "trace", LevelTrace.String())
	assert.Equal(t, "fatal", LevelFatal.String())
	assert.Equal(t, "unknown", Level(42).String())
}

func TestLevelFromEnv_Default(t *testing.T) {
	t.Setenv("EUDR_LOG_LEVEL", "")
	assert.Equal(t, LevelWarn, LevelFromEnv())
}

func TestLevelFromEnv_Unrecognized(t *testing.T) {
	t.Setenv("EUDR_LOG_LEVEL", "loud")
	assert.Equal(t, LevelWarn, LevelFromEnv())
}

func TestLevelFromEnv_Override(t *testing.T) {
	levels := map[string]Level{
		"trace": LevelTrace,
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"fatal": LevelFatal,
	}

	for name, want := range levels {
		t.Setenv("EUDR_LOG_LEVEL", name)
		assert.Equal(t, want, LevelFromEnv(), "EUDR_LOG_LEVEL=%s", name)
		assert.Equal(t, want, NewDefault().Level(), "EUDR_LOG_LEVEL=%s", name)
	}
}

func TestConsoleLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelWarn, Output: &buf})

	log.Trace("t")
	log.Debug("d")
	log.Info("i")
	assert.Empty(t, buf.String(), "messages below warn must be discarded")

	log.Warn("something odd")
	log.Error("something broke")
	log.Fatal("giving up")

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "WARN something odd")
	assert.Contains(t, lines[1], "ERROR something broke")
	assert.Contains(t, lines[2], "FATAL giving up")
}

func TestConsoleLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelTrace, Output: &buf})

	log.Info("request sent", "service", "echo", "attempt", 2)
	assert.Contains(t, buf.String(), "request sent service=echo attempt=2")
}

func TestConsoleLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelError, Output: &buf})

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.SetLevel(LevelInfo)
	assert.Equal(t, LevelInfo, log.Level())

	log.Info("visible")
	assert.Contains(t, buf.String(), "INFO visible")
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	backend := logrus.New()
	backend.SetOutput(&buf)
	backend.SetFormatter(&logrus.JSONFormatter{})

	log := New(Config{Level: LevelDebug, Backend: backend})

	log.Trace("hidden")
	assert.Empty(t, buf.String(), "trace is below the configured level")

	log.Debug("soap call", "service", "submission", "version", "v2")
	out := buf.String()
	assert.Contains(t, out, `"msg":"soap call"`)
	assert.Contains(t, out, `"service":"submission"`)
	assert.Contains(t, out, `"version":"v2"`)
	assert.Contains(t, out, `"level":"debug"`)
}

func TestStructuredLogger_FatalDoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	backend := logrus.New()
	backend.SetOutput(&buf)

	log := New(Config{Level: LevelTrace, Backend: backend})

	// If this called logrus.Fatal the test binary would exit here.
	log.Fatal("unrecoverable")
	assert.Contains(t, buf.String(), "unrecoverable")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Fatal("dropped")
	log.SetLevel(LevelTrace)
	log.Error("still fine")
}
