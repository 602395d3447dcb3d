// This package wraps spf13's afero so client code runs against the OS
// filesystem in production and an in-mem fs in tests.

package afero

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

type File = afero.File

type Fs = afero.Fs

func NewOsFs() Fs { return afero.NewOsFs() }

func NewMemMapFs() Fs { return afero.NewMemMapFs() }

func TempFile(fs Fs, dir, prefix string) (f File, err error) {
	return afero.TempFile(fs, dir, prefix)
}

func WriteFile(fs Fs, filename string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(fs, filename, data, perm)
}

func ReadFile(fs Fs, filename string) ([]byte, error) {
	return afero.ReadFile(fs, filename)
}

// Exists returns true and nil error if the given path for a file or directory
// exists.
func Exists(fs Fs, path string) (bool, error) {
	return afero.Exists(fs, path)
}

// EnsureParentDir creates the parent directory of path when it does not exist.
func EnsureParentDir(fs Fs, path string) error {
	return fs.MkdirAll(filepath.Dir(path), 0o755)
}
