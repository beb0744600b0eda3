package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cineasta-server/internal/imagegen"
	"cineasta-server/internal/model"
	"cineasta-server/internal/repository"
	"cineasta-server/internal/storage"
)

// AvatarService реализует пайплайн создания карикатурных аватаров.
type AvatarService struct {
	avatars   repository.AvatarRepository
	storage   storage.ObjectStorage
	generator imagegen.Generator
	logger    *zap.Logger
}

// NewAvatarService создает новый экземпляр сервиса аватаров.
func NewAvatarService(avatars repository.AvatarRepository, objects storage.ObjectStorage, generator imagegen.Generator, logger *zap.Logger) *AvatarService {
	return &AvatarService{
		avatars:   avatars,
		storage:   objects,
		generator: generator,
		logger:    logger.Named("AvatarService"),
	}
}

// CreateAvatarInput - параметры создания аватара. PhotoMimeType
// используется, когда фото передано голым base64 без data URL префикса.
type CreateAvatarInput struct {
	Name          string `json:"name" binding:"required"`
	PhotoBase64   string `json:"photoBase64" binding:"required"`
	PhotoMimeType string `json:"photoMimeType"`
}

// CreateAvatar выполняет пайплайн: декодирование фото, сохранение оригинала,
// генерация карикатуры, перехостинг результата и запись в БД. Сгенерированное
// изображение всегда перекладывается в собственное хранилище, чтобы не
// зависеть от времени жизни URL внешнего генератора.
func (s *AvatarService) CreateAvatar(ctx context.Context, userID int64, input CreateAvatarInput) (*model.Avatar, error) {
	log := s.logger.With(zap.Int64("userID", userID), zap.String("name", input.Name))

	photo, ext, err := decodeDataURL(input.PhotoBase64, input.PhotoMimeType)
	if err != nil {
		return nil, err
	}

	originalKey := fmt.Sprintf("%d/photos/original-%s.%s", userID, uuid.NewString(), ext)
	originalURL, err := s.storage.Put(ctx, originalKey, photo)
	if err != nil {
		return nil, err
	}
	log.Info("Original photo stored", zap.String("key", originalKey))

	generated, err := s.generator.Generate(ctx, avatarGenerationPrompt, originalURL)
	if err != nil {
		return nil, err
	}

	avatarKey := fmt.Sprintf("%d/avatars/avatar-%s.png", userID, uuid.NewString())
	avatarURL, err := s.storage.Put(ctx, avatarKey, generated)
	if err != nil {
		return nil, err
	}
	log.Info("Generated avatar stored", zap.String("key", avatarKey))

	prompt := avatarGenerationPrompt
	avatar := &model.Avatar{
		UserID:           userID,
		Name:             input.Name,
		OriginalPhotoURL: originalURL,
		OriginalPhotoKey: originalKey,
		AvatarImageURL:   avatarURL,
		AvatarImageKey:   avatarKey,
		GenerationPrompt: &prompt,
	}
	if err := s.avatars.Create(ctx, avatar); err != nil {
		return nil, err
	}
	return avatar, nil
}

// ListAvatars возвращает аватары пользователя.
func (s *AvatarService) ListAvatars(ctx context.Context, userID int64) ([]model.Avatar, error) {
	return s.avatars.ListByUserID(ctx, userID)
}

// GetAvatar возвращает аватар по ID с проверкой владельца.
func (s *AvatarService) GetAvatar(ctx context.Context, userID, avatarID int64) (*model.Avatar, error) {
	avatar, err := s.avatars.GetByID(ctx, avatarID)
	if err != nil {
		return nil, err
	}
	if avatar.UserID != userID && !avatar.IsPublic {
		return nil, model.ErrNotFound
	}
	return avatar, nil
}

// DeleteAvatar удаляет аватар пользователя. Персонажи уже созданных историй
// не трогаются. Файлы из хранилища убираются best-effort: запись в БД
// уже удалена, осиротевший файл хуже, чем потерянный.
func (s *AvatarService) DeleteAvatar(ctx context.Context, userID, avatarID int64) error {
	avatar, err := s.avatars.GetByID(ctx, avatarID)
	if err != nil {
		return err
	}
	if avatar.UserID != userID {
		return model.ErrNotFound
	}

	if err := s.avatars.Delete(ctx, avatarID, userID); err != nil {
		return err
	}

	for _, key := range []string{avatar.OriginalPhotoKey, avatar.AvatarImageKey} {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Failed to delete avatar object", zap.String("key", key), zap.Error(delErr))
		}
	}
	return nil
}

// decodeDataURL декодирует фото из data URL или голого base64.
// Возвращает байты и расширение файла, выведенное из MIME-типа:
// из префикса data URL, либо из mimeHint для голого base64.
func decodeDataURL(raw, mimeHint string) ([]byte, string, error) {
	payload := raw
	mime := mimeHint

	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ";base64,")
		if idx < 0 {
			return nil, "", fmt.Errorf("%w: фото должно быть в формате base64 data URL", model.ErrBadRequest)
		}
		mime = raw[len("data:"):idx]
		payload = raw[idx+len(";base64,"):]
	}

	ext := "jpg"
	switch mime {
	case "image/png":
		ext = "png"
	case "image/webp":
		ext = "webp"
	case "image/jpeg", "image/jpg":
		ext = "jpg"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: некорректный base64: %v", model.ErrBadRequest, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: пустое фото", model.ErrBadRequest)
	}
	return data, ext, nil
}
