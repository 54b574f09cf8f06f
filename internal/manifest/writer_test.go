package manifest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriter_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "objects.json")

	w := AtomicWriter{}
	require.NoError(t, w.WriteFile(path, []byte("first, and rather long content")))
	require.NoError(t, w.WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestAtomicWriter_KeepsExistingMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "objects.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))
	require.NoError(t, os.Chmod(path, 0600))

	require.NoError(t, AtomicWriter{}.WriteFile(path, []byte("new")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestAtomicWriter_PermAppliesToNewFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	path := filepath.Join(t.TempDir(), "objects.json")

	require.NoError(t, AtomicWriter{Perm: 0640}.WriteFile(path, []byte("{}")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestAtomicWriter_MissingParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "objects.json")

	err := AtomicWriter{}.WriteFile(path, []byte("{}"))
	require.Error(t, err)

	fsErr, ok := IsFileSystemError(err)
	require.True(t, ok)
	assert.Equal(t, OpWrite, fsErr.Op)
	assert.Equal(t, path, fsErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(statErr), "parent directory must not be created")
}

func TestAtomicWriter_DestinationIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "objects.json")
	require.NoError(t, os.Mkdir(target, 0755))
	touch(t, target, "keep")

	err := AtomicWriter{}.WriteFile(target, []byte("{}"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestIsTempFile(t *testing.T) {
	assert.True(t, IsTempFile("/a/.objects.json-12345.tmp", "/a/objects.json"))
	assert.False(t, IsTempFile("/a/objects.json", "/a/objects.json"))
	assert.False(t, IsTempFile("/a/.other.json-1.tmp", "/a/objects.json"))
	assert.False(t, IsTempFile("/a/.objects.json-.tmp", "/a/objects.json"))
}
