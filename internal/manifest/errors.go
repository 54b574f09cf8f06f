package manifest

import (
	"errors"
	"fmt"
)

// Filesystem operations reported by FileSystemError.
const (
	OpList  = "list"  // reading the source directory
	OpMatch = "match" // evaluating the glob pattern
	OpWrite = "write" // replacing the destination file
	OpRead  = "read"  // reading an existing manifest
)

// ErrInvalidUTF8 is returned when a matched path is not valid UTF-8 and
// therefore cannot be written to the manifest unchanged.
var ErrInvalidUTF8 = errors.New("path is not valid UTF-8")

// FileSystemError reports which path operation failed during generation.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error {
	return e.Err
}

// IsFileSystemError reports whether err (or anything it wraps) is a
// *FileSystemError, returning it when found.
func IsFileSystemError(err error) (*FileSystemError, bool) {
	var fsErr *FileSystemError
	if errors.As(err, &fsErr) {
		return fsErr, true
	}
	return nil, false
}
