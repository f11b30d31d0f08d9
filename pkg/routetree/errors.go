package routetree

import (
	"errors"
	"fmt"
)

// ErrDirectoryUnreadable is matched by every error returned when a directory
// in the scan cannot be listed or its name cannot be used as a route segment.
var ErrDirectoryUnreadable = errors.New("directory unreadable")

// ErrInvalidName is the cause recorded for a directory whose name is not
// valid UTF-8 and so cannot appear in a TypeScript string.
var ErrInvalidName = errors.New("directory name is not valid UTF-8")

// DirectoryError records the directory that could not be scanned.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("scanning directory %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// Is reports ErrDirectoryUnreadable as a match.
func (e *DirectoryError) Is(target error) bool {
	return target == ErrDirectoryUnreadable
}
