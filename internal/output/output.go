// Package output persists generated files.
//
// Writes are all-or-nothing: data goes to a temporary file in the target
// directory which is renamed into place, so a failed run never leaves a
// truncated file behind.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileMode is the permission of generated files.
const FileMode os.FileMode = 0644

// ErrWriteFailed is returned when the output file cannot be written.
var ErrWriteFailed = errors.New("output write failed")

// Write creates the parent directories of path and atomically replaces the
// file with data.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrWriteFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(FileMode); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}

	return nil
}

// UpToDate reports whether the file at path holds exactly data.
// A missing file is reported as stale, not as an error.
func UpToDate(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(existing, data), nil
}
