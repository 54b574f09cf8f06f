package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Globber resolves a glob pattern to the list of matching paths.
type Globber interface {
	Glob(pattern string) ([]string, error)
}

// DirGlobber matches the immediate children of a directory against the last
// segment of a pattern. Unlike filepath.Glob it reports a missing or
// unreadable source directory instead of returning an empty result.
//
// Entries whose name starts with "." only match when the pattern segment
// itself starts with ".".
type DirGlobber struct{}

// Glob returns the paths matching pattern in lexical order. Each result is the
// pattern's directory prefix exactly as written followed by the entry name, so
// "./assets/*" yields "./assets/a.obj" rather than "assets/a.obj".
func (DirGlobber) Glob(pattern string) ([]string, error) {
	matches, err := glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func glob(pattern string) ([]string, error) {
	prefix, dir, base := splitPattern(pattern)

	if _, err := filepath.Match(base, ""); err != nil {
		return nil, &FileSystemError{Op: OpMatch, Path: pattern, Err: err}
	}

	if !hasMeta(base) {
		return globLiteral(pattern, dir)
	}

	if !hasMeta(dir) {
		return matchDir(dir, prefix, base)
	}

	// Wildcards in the directory part expand one level at a time. Only the
	// matched directories are listed; nothing below them is visited.
	dirs, err := glob(dir)
	if err != nil {
		return nil, err
	}
	sep := prefix[len(prefix)-1:]
	var matches []string
	for _, d := range dirs {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			continue
		}
		m, err := matchDir(d, d+sep, base)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m...)
	}
	return matches, nil
}

// globLiteral handles a final segment without wildcards: the path either
// exists or there is no match. A missing parent directory is still an error.
func globLiteral(pattern, dir string) ([]string, error) {
	if _, err := os.Lstat(pattern); err == nil {
		return []string{pattern}, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, &FileSystemError{Op: OpList, Path: pattern, Err: err}
	}
	if hasMeta(dir) {
		return nil, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, &FileSystemError{Op: OpList, Path: dir, Err: err}
	}
	return nil, nil
}

func matchDir(dir, prefix, base string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileSystemError{Op: OpList, Path: dir, Err: err}
	}

	hiddenOK := strings.HasPrefix(base, ".")
	matches := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !hiddenOK && strings.HasPrefix(name, ".") {
			continue
		}
		ok, err := filepath.Match(base, name)
		if err != nil {
			return nil, &FileSystemError{Op: OpMatch, Path: prefix + base, Err: err}
		}
		if ok {
			matches = append(matches, prefix+name)
		}
	}
	return matches, nil
}

// splitPattern separates pattern into the raw prefix up to and including the
// last separator, the directory to list, and the final segment.
func splitPattern(pattern string) (prefix, dir, base string) {
	i := len(pattern) - 1
	for i >= 0 && !os.IsPathSeparator(pattern[i]) {
		i--
	}
	if i < 0 {
		return "", ".", pattern
	}
	prefix = pattern[:i+1]
	base = pattern[i+1:]
	dir = strings.TrimRightFunc(prefix, func(r rune) bool {
		return r < 0x80 && os.IsPathSeparator(uint8(r))
	})
	if dir == "" || (runtime.GOOS == "windows" && strings.HasSuffix(dir, ":")) {
		dir = prefix
	}
	return prefix, dir, base
}

func hasMeta(path string) bool {
	magic := `*?[`
	if runtime.GOOS != "windows" {
		magic = `*?[\`
	}
	return strings.ContainsAny(path, magic)
}

// ValidatePattern reports a malformed glob pattern.
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return errors.New("source pattern is empty")
	}
	_, err := filepath.Match(pattern, "")
	return err
}

// SourceDir returns the directory a pattern lists, without any trailing
// separator. For patterns with wildcards in the directory part it returns the
// longest leading directory that has none.
func SourceDir(pattern string) string {
	_, dir, _ := splitPattern(pattern)
	for hasMeta(dir) {
		_, dir, _ = splitPattern(dir)
	}
	return dir
}
