package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/phased/internal/fsutil"
)

func TestRotate_MissingFile(t *testing.T) {
	rotated, err := fsutil.Rotate(filepath.Join(t.TempDir(), "absent"), ".old")
	require.NoError(t, err)
	assert.False(t, rotated)
}

func TestRotate_MovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	rotated, err := fsutil.Rotate(path, ".old")
	require.NoError(t, err)
	assert.True(t, rotated)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	content, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(content))
}

func TestRotate_ReplacesOldBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	require.NoError(t, os.WriteFile(path+".old", []byte("v1"), 0o644))

	rotated, err := fsutil.Rotate(path, ".old")
	require.NoError(t, err)
	assert.True(t, rotated)

	content, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(content))
}
