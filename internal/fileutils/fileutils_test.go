package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spending-nb/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "aug.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.True(t, fileutils.FileExists(file))
	assert.False(t, fileutils.FileExists(tempDir))
	assert.False(t, fileutils.FileExists(filepath.Join(tempDir, "missing.csv")))
}

func TestDirectoryExists(t *testing.T) {
	tempDir := t.TempDir()
	assert.True(t, fileutils.DirectoryExists(tempDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tempDir, "nope")))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
	assert.True(t, fileutils.DirectoryExists(dir))

	// second call is a no-op
	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
}

func TestArchiveFile(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "aug.csv")
	require.NoError(t, os.WriteFile(src, []byte("2018-08-01,1,1,Food,bagel\n"), 0600))
	archiveDir := filepath.Join(tempDir, "history_archive")

	dst, err := fileutils.ArchiveFile(src, archiveDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(archiveDir, "aug.csv"), dst)
	assert.False(t, fileutils.FileExists(src))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "2018-08-01,1,1,Food,bagel\n", string(data))
}

func TestArchiveFile_ReplacesExisting(t *testing.T) {
	tempDir := t.TempDir()
	archiveDir := filepath.Join(tempDir, "archive")
	require.NoError(t, os.MkdirAll(archiveDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(archiveDir, "aug.csv"), []byte("old"), 0600))

	src := filepath.Join(tempDir, "aug.csv")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0600))

	dst, err := fileutils.ArchiveFile(src, archiveDir)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestArchiveFile_AlreadyInArchive(t *testing.T) {
	archiveDir := t.TempDir()
	src := filepath.Join(archiveDir, "aug.csv")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0600))

	dst, err := fileutils.ArchiveFile(src, archiveDir)
	require.NoError(t, err)
	assert.Equal(t, src, dst)
	assert.True(t, fileutils.FileExists(src))
}

func TestArchiveFile_MissingSource(t *testing.T) {
	_, err := fileutils.ArchiveFile(filepath.Join(t.TempDir(), "missing.csv"), t.TempDir())
	assert.Error(t, err)
}
