package output

import (
	"io/fs"
	"os"

	"github.com/moby/sys/atomicwriter"
)

// FileSystem abstracts the file operations used to publish rules.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the named file with data. Readers see either the
	// old or the new contents, never a partial write.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error
}

var defaultFS FileSystem = &osFileSystem{}

// DefaultFS returns the FileSystem backed by the real OS.
func DefaultFS() FileSystem {
	return defaultFS
}

// SetDefaultFS replaces the FileSystem used by Write and Read.
func SetDefaultFS(fsys FileSystem) {
	defaultFS = fsys
}

// ResetDefaults restores the OS FileSystem.
func ResetDefaults() {
	defaultFS = &osFileSystem{}
}

// osFileSystem implements FileSystem with atomic renames.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *osFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return atomicwriter.WriteFile(path, data, perm)
}

func (f *osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}
