// Package filex contains filesystem helpers built on afero so callers can
// swap the OS filesystem for an in-memory one in tests.
package filex

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnsureDir creates dir (and parents) on fs if it does not exist yet and
// returns its absolute form. Relative paths resolve against the working
// directory.
func EnsureDir(fs afero.Fs, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := fs.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}
