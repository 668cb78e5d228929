package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetup_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"key":"value"`) {
		t.Errorf("Expected key/value attribute in output, got: %s", output)
	}
}

func TestSetup_VerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	if !Verbose {
		t.Error("Verbose flag should be true after Setup(true, ...)")
	}

	Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Errorf("Debug message should appear in verbose mode, got: %s", buf.String())
	}
}

func TestSetup_NonVerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	if Verbose {
		t.Error("Verbose flag should be false after Setup(false, ...)")
	}

	Debug("debug message")

	if strings.Contains(buf.String(), "debug message") {
		t.Errorf("Debug message should NOT appear in non-verbose mode, got: %s", buf.String())
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func(string, ...any)
		msg  string
	}{
		{"info", Info, "info test"},
		{"warn", Warn, "warn test"},
		{"error", Error, "error test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(false, false, &buf)

			tt.log(tt.msg, "key", "value")

			if !strings.Contains(buf.String(), tt.msg) {
				t.Errorf("Expected %q in output, got: %s", tt.msg, buf.String())
			}
		})
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	logger := With("interface", "vmbr0")
	if logger == nil {
		t.Fatal("With() returned nil")
	}

	logger.Warn("with test")

	output := buf.String()
	if !strings.Contains(output, "with test") {
		t.Errorf("Expected 'with test' in output, got: %s", output)
	}
	if !strings.Contains(output, "interface=vmbr0") {
		t.Errorf("Expected 'interface=vmbr0' in output, got: %s", output)
	}

	if warnings, _ := Counts(); warnings != 1 {
		t.Errorf("warnings = %d, want 1 (derived loggers must count too)", warnings)
	}
}

func TestCounts(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Debug("ignored")
	Info("ignored")
	Warn("one")
	Warn("two")
	Error("three")

	warnings, errs := Counts()
	if warnings != 2 {
		t.Errorf("warnings = %d, want 2", warnings)
	}
	if errs != 1 {
		t.Errorf("errors = %d, want 1", errs)
	}

	Setup(false, false, &buf)
	if w, e := Counts(); w != 0 || e != 0 {
		t.Errorf("Counts() after Setup = (%d, %d), want (0, 0)", w, e)
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() { Stdout, Stderr = oldOut, oldErr })

	UserInfo("compiling %s", "port_conf.yaml")
	UserSuccess("wrote %d rules", 3)
	UserWarning("%d disabled", 1)
	UserError("failed: %v", "boom")

	if got, want := out.String(), "ℹ compiling port_conf.yaml\n✓ wrote 3 rules\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if got, want := errOut.String(), "⚠ 1 disabled\n✗ failed: boom\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestSetup_NilWriter(t *testing.T) {
	Setup(false, false, nil)

	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}
