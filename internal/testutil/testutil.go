package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/logging"
)

// TestEnv is a scratch filesystem for end-to-end runs: an input document,
// a settings file and a root directory the output is written under.
type TestEnv struct {
	T            *testing.T
	TmpDir       string
	Root         string
	InputPath    string
	SettingsPath string
}

// NewTestEnv creates a new test environment and silences logging.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "root")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create root %s: %v", root, err)
	}

	logging.Setup(false, false, io.Discard)

	return &TestEnv{
		T:            t,
		TmpDir:       tmpDir,
		Root:         root,
		InputPath:    filepath.Join(tmpDir, "port_conf.yaml"),
		SettingsPath: filepath.Join(tmpDir, "config.toml"),
	}
}

// WriteInput copies the named fixture to InputPath.
func (e *TestEnv) WriteInput(fixture string) {
	e.T.Helper()
	data, err := LoadFixture(fixture)
	if err != nil {
		e.T.Fatalf("Failed to load fixture %s: %v", fixture, err)
	}
	e.WriteFile(e.InputPath, string(data))
}

// WriteSettings writes content to SettingsPath.
func (e *TestEnv) WriteSettings(content string) {
	e.T.Helper()
	e.WriteFile(e.SettingsPath, content)
}

// WriteFile writes content to path, creating parent directories.
func (e *TestEnv) WriteFile(path, content string) {
	e.T.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", path, err)
	}
}

// RootPath returns path as seen under Root.
func (e *TestEnv) RootPath(path string) string {
	return filepath.Join(e.Root, path)
}

// ReadFile returns the contents of path, failing the test if it is missing.
func (e *TestEnv) ReadFile(path string) string {
	e.T.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		e.T.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists.
func (e *TestEnv) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
