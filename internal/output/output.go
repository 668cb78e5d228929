package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/config"
)

// File and directory modes for published rules.
const (
	FileMode fs.FileMode = 0644
	DirMode  fs.FileMode = 0755
)

// Stdout receives output written to config.StdoutPath.
var Stdout io.Writer = os.Stdout

// IsStdout reports whether path selects standard output.
func IsStdout(path string) bool {
	return path == config.StdoutPath
}

// Resolve places path under root. Symlinks and ".." components cannot
// escape root. An empty root or "/" leaves path unchanged apart from
// cleaning.
func Resolve(root, path string) (string, error) {
	if IsStdout(path) {
		return path, nil
	}
	if root == "" || root == "/" {
		return filepath.Clean(path), nil
	}

	resolved, err := securejoin.SecureJoin(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s under %s: %w", path, root, err)
	}
	return resolved, nil
}

// Write publishes data at path, creating parent directories as needed.
// The previous file, if any, is replaced atomically.
func Write(path string, data []byte) error {
	if IsStdout(path) {
		if _, err := Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	}

	fsys := DefaultFS()
	if err := fsys.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := fsys.WriteFile(path, data, FileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Read returns the current contents of path. A missing file reads as
// empty with exists set to false.
func Read(path string) (data []byte, exists bool, err error) {
	data, err = DefaultFS().ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

// Diff returns a unified diff from current to generated, or "" when they
// are identical.
func Diff(current, generated []byte, currentName, generatedName string) (string, error) {
	if string(current) == string(generated) {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(generated)),
		FromFile: currentName,
		ToFile:   generatedName,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", currentName, err)
	}
	return text, nil
}
