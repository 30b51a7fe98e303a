package logger

import (
	"bytes"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_DefaultLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("info line")
	if !strings.Contains(buf.String(), "info line") {
		t.Error("Info should be logged at default level")
	}

	buf.Reset()
	Debug("debug line")
	if strings.Contains(buf.String(), "debug line") {
		t.Error("Debug should not be logged at default level")
	}
}

func TestInit_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	Debug("debug line")
	if !strings.Contains(buf.String(), "debug line") {
		t.Error("Debug should be logged when Debug=true")
	}
}

func TestInit_Quiet(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Quiet: true, Output: buf})
	defer resetLogger()

	Info("info line")
	Warn("warn line")
	Error("error line")

	out := buf.String()
	if strings.Contains(out, "info line") || strings.Contains(out, "warn line") {
		t.Error("Info/Warn should not be logged when Quiet=true")
	}
	if !strings.Contains(out, "error line") {
		t.Error("Error should be logged when Quiet=true")
	}
}

func TestQuiet_OverridesDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Quiet: true, Output: buf})
	defer resetLogger()

	Debug("debug line")
	Error("error line")

	out := buf.String()
	if strings.Contains(out, "debug line") {
		t.Error("Debug should not be logged when Quiet=true")
	}
	if !strings.Contains(out, "error line") {
		t.Error("Error should be logged when Quiet=true")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("json line")

	out := buf.String()
	if !strings.Contains(out, "{") || !strings.Contains(out, "json line") {
		t.Errorf("expected JSON output containing message, got %q", out)
	}
}

func TestWith_CarriesAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	l := With("key", "value")
	if l == nil {
		t.Fatal("With() returned nil")
	}
	l.Info("with attrs")

	out := buf.String()
	if !strings.Contains(out, "with attrs") || !strings.Contains(out, "key") || !strings.Contains(out, "value") {
		t.Errorf("expected message and attributes in output, got %q", out)
	}
}

func TestInfo_StructuredArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("structured", "count", 42)

	out := buf.String()
	if !strings.Contains(out, "count") || !strings.Contains(out, "42") {
		t.Errorf("expected structured args in output, got %q", out)
	}
}
