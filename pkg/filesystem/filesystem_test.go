package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchkit/benchkit/pkg/filesystem"
)

func TestOSRoundTrip(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")

	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fsys.WriteFile(path, []byte("content"), 0644))

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size())

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	require.NoError(t, fsys.Remove(path))
	_, err = fsys.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
