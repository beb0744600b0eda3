package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
)

func newTestStorage(t *testing.T) ObjectStorage {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/", zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestLocalStoragePut(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/files", zap.NewNop())
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "7/photos/original-abc.jpg", []byte("photo-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/7/photos/original-abc.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "7", "photos", "original-abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("photo-bytes"), data)
}

func TestLocalStoragePut_RejectsTraversal(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Put(context.Background(), "../outside.txt", []byte("x"))
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)

	_, err = s.Put(context.Background(), "", []byte("x"))
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)
}

func TestLocalStorageDelete(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Put(context.Background(), "7/avatars/avatar-x.png", []byte("img"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), "7/avatars/avatar-x.png"))
	// Повторное удаление не является ошибкой
	assert.NoError(t, s.Delete(context.Background(), "7/avatars/avatar-x.png"))
}

func TestLocalStoragePublicURL_TrimsTrailingSlash(t *testing.T) {
	s := newTestStorage(t)
	assert.Equal(t, "http://localhost:8080/files/a/b.png", s.PublicURL("a/b.png"))
}
