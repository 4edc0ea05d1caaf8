package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOwnerFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.yaml")

	require.NoError(t, WriteOwnerFile(path, []byte("openapi: 3.0.0\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.0\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, OwnerReadWrite, info.Mode().Perm())
}

func TestWriteOwnerFile_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteOwnerFile(path, []byte("first")))
	require.NoError(t, WriteOwnerFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestRejectSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.yaml")
	require.NoError(t, os.WriteFile(target, []byte("x"), OwnerReadWrite))
	link := filepath.Join(dir, "link.yaml")
	require.NoError(t, os.Symlink(target, link))

	assert.NoError(t, RejectSymlink(filepath.Join(dir, "missing.yaml")))
	assert.NoError(t, RejectSymlink(target))
	assert.ErrorContains(t, RejectSymlink(link), "refusing to write to symlink")
	assert.Error(t, WriteOwnerFile(link, []byte("y")))
}
