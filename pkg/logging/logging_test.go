package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		result := test.level.String()
		if result != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, expected %s", test.level, result, test.expected)
		}
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	if LevelDebug.SlogLevel() >= LevelInfo.SlogLevel() {
		t.Error("debug should be below info")
	}
	if LevelWarn.SlogLevel() >= LevelError.SlogLevel() {
		t.Error("warn should be below error")
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelInfo, &buf)

	Debug("Test", "should not appear")
	Info("Test", "hello %s", "world")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Error("debug message logged despite info level")
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("info message missing from output: %s", out)
	}
	if !strings.Contains(out, "subsystem=Test") {
		t.Errorf("subsystem attribute missing from output: %s", out)
	}
}

func TestError_AttachesError(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelDebug, &buf)

	Error("Test", errors.New("boom"), "reload failed")

	out := buf.String()
	if !strings.Contains(out, "reload failed") || !strings.Contains(out, "boom") {
		t.Errorf("error output incomplete: %s", out)
	}
}
