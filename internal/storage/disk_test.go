package storage

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOpen(t *testing.T) {
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	fileURL, err := store.Save("project-1", "site.ags", strings.NewReader(`"GROUP","PROJ"`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fileURL, "file://"))
	assert.Contains(t, fileURL, "/project-1/")
	assert.True(t, strings.HasSuffix(fileURL, "-site.ags"))

	rc, err := store.Open(fileURL)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `"GROUP","PROJ"`, string(content))
}

func TestSaveStripsDirectories(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	fileURL, err := store.Save("p", "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Contains(t, fileURL, "/p/")
	assert.True(t, strings.HasSuffix(fileURL, "-passwd"))

	_, err = store.Open(fileURL)
	assert.NoError(t, err)
}

func TestOpenOutsideStore(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("file:///etc/passwd")
	assert.ErrorIs(t, err, ErrOutsideStore)

	_, err = store.Open("https://example.com/site.ags")
	assert.Error(t, err)
}
