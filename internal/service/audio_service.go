package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
	"cineasta-server/internal/repository"
	"cineasta-server/internal/storage"
	"cineasta-server/internal/transcribe"
)

// Грубая оценка длительности записи: байты webm/opus на секунду речи.
const audioBytesPerSecond = 16000

// AudioService реализует загрузку озвучек персонажей.
type AudioService struct {
	audios      repository.AudioRepository
	stories     repository.StoryRepository
	storage     storage.ObjectStorage
	transcriber transcribe.Transcriber
	language    string
	logger      *zap.Logger
}

// NewAudioService создает новый экземпляр сервиса аудио.
func NewAudioService(audios repository.AudioRepository, stories repository.StoryRepository, objects storage.ObjectStorage, transcriber transcribe.Transcriber, language string, logger *zap.Logger) *AudioService {
	return &AudioService{
		audios:      audios,
		stories:     stories,
		storage:     objects,
		transcriber: transcriber,
		language:    language,
		logger:      logger.Named("AudioService"),
	}
}

// UploadAudioInput - параметры загрузки озвучки.
type UploadAudioInput struct {
	StoryCharacterID int64  `json:"storyCharacterId" binding:"required"`
	ChapterID        *int64 `json:"chapterId"`
	AudioBase64      string `json:"audioBase64" binding:"required"`
}

// UploadAudio сохраняет аудиозапись пользователя для персонажа.
// Транскрипция - best-effort: её ошибка логируется и не прерывает загрузку,
// запись сохраняется без текста.
func (s *AudioService) UploadAudio(ctx context.Context, userID int64, input UploadAudioInput) (*model.CharacterAudio, error) {
	log := s.logger.With(zap.Int64("userID", userID), zap.Int64("storyCharacterID", input.StoryCharacterID))

	character, err := s.stories.GetCharacterByID(ctx, input.StoryCharacterID)
	if err != nil {
		return nil, err
	}
	story, err := s.stories.GetByID(ctx, character.StoryID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		return nil, model.ErrNotFound
	}

	audio, err := decodeAudioBase64(input.AudioBase64)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d/audios/audio-%s.webm", userID, uuid.NewString())
	url, err := s.storage.Put(ctx, key, audio)
	if err != nil {
		return nil, err
	}

	duration := len(audio) / audioBytesPerSecond

	var transcription *string
	text, trErr := s.transcriber.Transcribe(ctx, audio, s.language)
	if trErr != nil {
		log.Warn("Transcription failed, saving audio without text", zap.Error(trErr))
	} else if text != "" {
		transcription = &text
	}

	record := &model.CharacterAudio{
		StoryCharacterID: input.StoryCharacterID,
		ChapterID:        input.ChapterID,
		AudioURL:         url,
		AudioKey:         key,
		Duration:         &duration,
		Transcription:    transcription,
	}
	if err := s.audios.Create(ctx, record); err != nil {
		return nil, err
	}

	log.Info("Character audio uploaded", zap.Int64("audioID", record.ID), zap.Int("durationSeconds", duration))
	return record, nil
}

// ListAudios возвращает озвучки персонажа с проверкой владельца истории.
func (s *AudioService) ListAudios(ctx context.Context, userID, storyCharacterID int64) ([]model.CharacterAudio, error) {
	character, err := s.stories.GetCharacterByID(ctx, storyCharacterID)
	if err != nil {
		return nil, err
	}
	story, err := s.stories.GetByID(ctx, character.StoryID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID && story.Status != model.StatusPublished {
		return nil, model.ErrNotFound
	}
	return s.audios.ListByCharacter(ctx, storyCharacterID)
}

// decodeAudioBase64 декодирует аудио из data URL или голого base64.
func decodeAudioBase64(raw string) ([]byte, error) {
	payload := raw
	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ";base64,")
		if idx < 0 {
			return nil, fmt.Errorf("%w: аудио должно быть в формате base64", model.ErrBadRequest)
		}
		payload = raw[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: некорректный base64: %v", model.ErrBadRequest, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: пустая аудиозапись", model.ErrBadRequest)
	}
	return data, nil
}
