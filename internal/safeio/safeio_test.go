package safeio_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modularizer/repart-go/internal/safeio"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadLimited(t *testing.T) {
	path := writeTemp(t, "ok.txt", "hello")

	data, err := safeio.ReadLimited(path, 100)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestReadLimited_TooLarge(t *testing.T) {
	path := writeTemp(t, "big.txt", "0123456789")

	_, err := safeio.ReadLimited(path, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, safeio.ErrTooLarge))
}

func TestReadLimited_ExactLimit(t *testing.T) {
	path := writeTemp(t, "exact.txt", "12345")

	data, err := safeio.ReadLimited(path, 5)
	require.NoError(t, err)
	assert.Len(t, data, 5)
}

func TestReadLimited_Directory(t *testing.T) {
	_, err := safeio.ReadLimited(t.TempDir(), 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, safeio.ErrNotRegularFile))
}

func TestReadLimited_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}
	target := writeTemp(t, "target.txt", "data")
	link := filepath.Join(filepath.Dir(target), "link.txt")
	require.NoError(t, os.Symlink(target, link))

	_, err := safeio.ReadLimited(link, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, safeio.ErrNotRegularFile))
}

func TestReadLimited_MissingFileSanitizesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret-dir", "missing.txt")

	_, err := safeio.ReadLimited(path, 100)
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "secret-dir"),
		"error must not leak the file system path: %v", err)
}

func TestOpenRegular(t *testing.T) {
	path := writeTemp(t, "f.txt", "content")

	f, info, err := safeio.OpenRegular(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, int64(7), info.Size())
}
