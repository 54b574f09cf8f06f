package manifest

import (
	"os"
	"path/filepath"
)

// FileWriter replaces the contents of a file.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// AtomicWriter writes to a temporary file in the destination directory and
// renames it over the destination, so readers never observe a partial
// manifest. The parent directory must already exist.
type AtomicWriter struct {
	// Perm is applied when the destination does not exist yet. Zero means
	// 0644. An existing destination keeps its permission bits.
	Perm os.FileMode
}

// WriteFile replaces path with data. Failures are reported as
// *FileSystemError with Op "write"; no temporary file is left behind.
func (w AtomicWriter) WriteFile(path string, data []byte) error {
	perm := w.Perm
	if perm == 0 {
		perm = 0644
	}
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return &FileSystemError{Op: OpWrite, Path: path, Err: err}
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return &FileSystemError{Op: OpWrite, Path: path, Err: err}
	}
	if err := tempFile.Sync(); err != nil {
		return &FileSystemError{Op: OpWrite, Path: path, Err: err}
	}
	if err := tempFile.Close(); err != nil {
		return &FileSystemError{Op: OpWrite, Path: path, Err: err}
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		return &FileSystemError{Op: OpWrite, Path: path, Err: err}
	}

	if err := os.Rename(tempPath, path); err != nil {
		return &FileSystemError{Op: OpWrite, Path: path, Err: err}
	}
	success = true
	return nil
}

// IsTempFile reports whether name looks like a temporary file created by
// AtomicWriter for the destination dest.
func IsTempFile(name, dest string) bool {
	base := filepath.Base(name)
	prefix := "." + filepath.Base(dest) + "-"
	return len(base) > len(prefix)+len(".tmp") &&
		base[:len(prefix)] == prefix &&
		filepath.Ext(base) == ".tmp"
}
