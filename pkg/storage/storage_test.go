package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUploadDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "images", "Photo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/images/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	// 重复删除不报错
	assert.NoError(t, s.Delete(context.Background(), url))
}

func TestLocalStorageRejectsForeignURL(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	assert.Error(t, s.Delete(context.Background(), "http://evil.example.com/x.png"))
	assert.Error(t, s.Delete(context.Background(), "http://localhost:8080/uploads/../secret"))
}

func TestPublicIDFromURL(t *testing.T) {
	id, ok := publicIDFromURL("https://res.cloudinary.com/demo/image/upload/v1712/moments/images/abc.jpg")
	require.True(t, ok)
	assert.Equal(t, "moments/images/abc", id)

	_, ok = publicIDFromURL("https://example.com/x.jpg")
	assert.False(t, ok)
}
