package service_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cineasta-server/internal/mocks"
	"cineasta-server/internal/model"
	"cineasta-server/internal/service"
)

const testCharacterID = int64(33)

func newAudioService(t *testing.T) (*service.AudioService, *mocks.MockAudioRepository, *mocks.MockStoryRepository, *mocks.MockObjectStorage, *mocks.MockTranscriber) {
	audioRepo := mocks.NewMockAudioRepository(t)
	storyRepo := mocks.NewMockStoryRepository(t)
	objects := mocks.NewMockObjectStorage(t)
	transcriber := mocks.NewMockTranscriber(t)
	svc := service.NewAudioService(audioRepo, storyRepo, objects, transcriber, "pt", zap.NewNop())
	return svc, audioRepo, storyRepo, objects, transcriber
}

func ownedCharacter() *model.StoryCharacter {
	return &model.StoryCharacter{ID: testCharacterID, StoryID: testStoryID, AvatarID: firstAvatarID}
}

func audioInput(payload []byte) service.UploadAudioInput {
	return service.UploadAudioInput{
		StoryCharacterID: testCharacterID,
		AudioBase64:      base64.StdEncoding.EncodeToString(payload),
	}
}

func TestUploadAudio_Success(t *testing.T) {
	svc, audioRepo, storyRepo, objects, transcriber := newAudioService(t)

	// 32000 байт ~ 2 секунды
	payload := bytes.Repeat([]byte{0xAB}, 32000)

	storyRepo.On("GetCharacterByID", mock.Anything, testCharacterID).Return(ownedCharacter(), nil)
	storyRepo.On("GetByID", mock.Anything, testStoryID).Return(draftStory(), nil)
	objects.On("Put", mock.Anything, mock.AnythingOfType("string"), payload).Return("http://files/audio.webm", nil)
	transcriber.On("Transcribe", mock.Anything, payload, "pt").Return("era uma vez", nil)

	audioRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.CharacterAudio) bool {
		return a.StoryCharacterID == testCharacterID &&
			a.Duration != nil && *a.Duration == 2 &&
			a.Transcription != nil && *a.Transcription == "era uma vez"
	})).Return(nil).Once()

	record, err := svc.UploadAudio(context.Background(), testUserID, audioInput(payload))

	require.NoError(t, err)
	assert.Equal(t, "http://files/audio.webm", record.AudioURL)
}

func TestUploadAudio_TranscriptionFailureIsSwallowed(t *testing.T) {
	svc, audioRepo, storyRepo, objects, transcriber := newAudioService(t)

	payload := bytes.Repeat([]byte{0x01}, 16000)

	storyRepo.On("GetCharacterByID", mock.Anything, testCharacterID).Return(ownedCharacter(), nil)
	storyRepo.On("GetByID", mock.Anything, testStoryID).Return(draftStory(), nil)
	objects.On("Put", mock.Anything, mock.AnythingOfType("string"), payload).Return("http://files/audio.webm", nil)
	transcriber.On("Transcribe", mock.Anything, payload, "pt").Return("", model.ErrTranscriptionFailed)

	// Запись сохраняется без текста транскрипции
	audioRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.CharacterAudio) bool {
		return a.Transcription == nil
	})).Return(nil).Once()

	record, err := svc.UploadAudio(context.Background(), testUserID, audioInput(payload))

	require.NoError(t, err)
	assert.Nil(t, record.Transcription)
}

func TestUploadAudio_ForeignCharacter(t *testing.T) {
	svc, audioRepo, storyRepo, _, _ := newAudioService(t)

	foreign := draftStory()
	foreign.UserID = otherUserID
	storyRepo.On("GetCharacterByID", mock.Anything, testCharacterID).Return(ownedCharacter(), nil)
	storyRepo.On("GetByID", mock.Anything, testStoryID).Return(foreign, nil)

	_, err := svc.UploadAudio(context.Background(), testUserID, audioInput([]byte("x")))

	assert.ErrorIs(t, err, model.ErrNotFound)
	audioRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadAudio_EmptyAudio(t *testing.T) {
	svc, _, storyRepo, _, _ := newAudioService(t)

	storyRepo.On("GetCharacterByID", mock.Anything, testCharacterID).Return(ownedCharacter(), nil)
	storyRepo.On("GetByID", mock.Anything, testStoryID).Return(draftStory(), nil)

	input := service.UploadAudioInput{StoryCharacterID: testCharacterID, AudioBase64: ""}
	_, err := svc.UploadAudio(context.Background(), testUserID, input)

	assert.ErrorIs(t, err, model.ErrBadRequest)
}
