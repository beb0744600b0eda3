package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"cineasta-server/internal/model"
)

// ObjectStorage хранит бинарные объекты (фото, аватары, аудио) по ключу
// вида "<userID>/photos/original-<rand>.jpg" и отдает публичный URL.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	// PublicURL возвращает публичный URL объекта без обращения к хранилищу.
	PublicURL(key string) string
}

// Compile-time check to ensure localStorage implements ObjectStorage
var _ ObjectStorage = (*localStorage)(nil)

// localStorage пишет объекты на локальный диск под смонтированным volume.
// Ключ напрямую отображается в путь файла, публичный URL собирается из
// базового URL раздачи статики.
type localStorage struct {
	savePath      string
	publicBaseURL string
	logger        *zap.Logger
}

// NewLocalStorage creates a disk-backed ObjectStorage rooted at savePath.
func NewLocalStorage(savePath, publicBaseURL string, logger *zap.Logger) (ObjectStorage, error) {
	if err := os.MkdirAll(savePath, 0o755); err != nil {
		return nil, fmt.Errorf("%w: не удалось создать каталог хранилища %s: %v", model.ErrStorageUnavailable, savePath, err)
	}
	return &localStorage{
		savePath:      savePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger.Named("LocalStorage"),
	}, nil
}

func (s *localStorage) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: некорректный ключ объекта %q", model.ErrStorageUnavailable, key)
	}

	filePath := filepath.Join(s.savePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		s.logger.Error("Failed to create object directory", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		s.logger.Error("Failed to write object", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}

	url := s.PublicURL(key)
	s.logger.Info("Object stored", zap.String("key", key), zap.Int("sizeBytes", len(data)))
	return url, nil
}

func (s *localStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	filePath := filepath.Join(s.savePath, filepath.FromSlash(key))
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.logger.Error("Failed to delete object", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	s.logger.Info("Object deleted", zap.String("key", key))
	return nil
}

func (s *localStorage) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}
