package service_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cineasta-server/internal/mocks"
	"cineasta-server/internal/model"
	"cineasta-server/internal/service"
)

func newAvatarService(t *testing.T) (*service.AvatarService, *mocks.MockAvatarRepository, *mocks.MockObjectStorage, *mocks.MockImageGenerator) {
	avatarRepo := mocks.NewMockAvatarRepository(t)
	objects := mocks.NewMockObjectStorage(t)
	generator := mocks.NewMockImageGenerator(t)
	svc := service.NewAvatarService(avatarRepo, objects, generator, zap.NewNop())
	return svc, avatarRepo, objects, generator
}

func photoDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
}

func TestCreateAvatar_Pipeline(t *testing.T) {
	svc, avatarRepo, objects, generator := newAvatarService(t)

	// Оригинал сохраняется под ключом photos, карикатура - под avatars
	objects.On("Put", mock.Anything,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "7/photos/original-") && strings.HasSuffix(key, ".png")
		}),
		[]byte("fake-png-bytes"),
	).Return("http://files/original.png", nil).Once()

	generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "The Amazing World of Gumball")
	}), "http://files/original.png").Return([]byte("generated-image"), nil).Once()

	objects.On("Put", mock.Anything,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "7/avatars/avatar-") && strings.HasSuffix(key, ".png")
		}),
		[]byte("generated-image"),
	).Return("http://files/avatar.png", nil).Once()

	avatarRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Avatar) bool {
		return a.UserID == testUserID &&
			a.Name == "Lia" &&
			a.OriginalPhotoURL == "http://files/original.png" &&
			a.AvatarImageURL == "http://files/avatar.png" &&
			a.GenerationPrompt != nil
	})).Return(nil).Once()

	avatar, err := svc.CreateAvatar(context.Background(), testUserID, service.CreateAvatarInput{
		Name:        "Lia",
		PhotoBase64: photoDataURL(),
	})

	require.NoError(t, err)
	assert.Equal(t, "Lia", avatar.Name)
	objects.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestCreateAvatar_BareBase64UsesMimeHint(t *testing.T) {
	svc, avatarRepo, objects, generator := newAvatarService(t)

	objects.On("Put", mock.Anything,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "7/photos/original-") && strings.HasSuffix(key, ".webp")
		}),
		[]byte("webp-bytes"),
	).Return("http://files/original.webp", nil).Once()
	generator.On("Generate", mock.Anything, mock.Anything, "http://files/original.webp").
		Return([]byte("generated-image"), nil).Once()
	objects.On("Put", mock.Anything, mock.Anything, []byte("generated-image")).
		Return("http://files/avatar.png", nil).Once()
	avatarRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.CreateAvatar(context.Background(), testUserID, service.CreateAvatarInput{
		Name:          "Lia",
		PhotoBase64:   base64.StdEncoding.EncodeToString([]byte("webp-bytes")),
		PhotoMimeType: "image/webp",
	})

	require.NoError(t, err)
	objects.AssertExpectations(t)
}

func TestCreateAvatar_GenerationFailure(t *testing.T) {
	svc, avatarRepo, objects, generator := newAvatarService(t)

	objects.On("Put", mock.Anything, mock.Anything, mock.Anything).Return("http://files/original.png", nil).Once()
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, model.ErrGenerationFailed).Once()

	_, err := svc.CreateAvatar(context.Background(), testUserID, service.CreateAvatarInput{
		Name:        "Lia",
		PhotoBase64: photoDataURL(),
	})

	assert.ErrorIs(t, err, model.ErrGenerationFailed)
	avatarRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateAvatar_InvalidBase64(t *testing.T) {
	svc, _, _, _ := newAvatarService(t)

	_, err := svc.CreateAvatar(context.Background(), testUserID, service.CreateAvatarInput{
		Name:        "Lia",
		PhotoBase64: "data:image/png;base64,@@@not-base64@@@",
	})

	assert.ErrorIs(t, err, model.ErrBadRequest)
}

func TestDeleteAvatar(t *testing.T) {
	t.Run("owner deletes avatar with storage cleanup", func(t *testing.T) {
		svc, avatarRepo, objects, _ := newAvatarService(t)
		avatar := &model.Avatar{
			ID:               firstAvatarID,
			UserID:           testUserID,
			OriginalPhotoKey: "7/photos/original-a.png",
			AvatarImageKey:   "7/avatars/avatar-a.png",
		}
		avatarRepo.On("GetByID", mock.Anything, firstAvatarID).Return(avatar, nil)
		avatarRepo.On("Delete", mock.Anything, firstAvatarID, testUserID).Return(nil).Once()
		objects.On("Delete", mock.Anything, "7/photos/original-a.png").Return(nil).Once()
		objects.On("Delete", mock.Anything, "7/avatars/avatar-a.png").Return(nil).Once()

		err := svc.DeleteAvatar(context.Background(), testUserID, firstAvatarID)
		assert.NoError(t, err)
		objects.AssertExpectations(t)
	})

	t.Run("foreign avatar is indistinguishable from missing", func(t *testing.T) {
		svc, avatarRepo, _, _ := newAvatarService(t)
		avatar := &model.Avatar{ID: firstAvatarID, UserID: otherUserID}
		avatarRepo.On("GetByID", mock.Anything, firstAvatarID).Return(avatar, nil)

		err := svc.DeleteAvatar(context.Background(), testUserID, firstAvatarID)
		assert.ErrorIs(t, err, model.ErrNotFound)
		avatarRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure does not fail the delete", func(t *testing.T) {
		svc, avatarRepo, objects, _ := newAvatarService(t)
		avatar := &model.Avatar{
			ID:               firstAvatarID,
			UserID:           testUserID,
			OriginalPhotoKey: "7/photos/original-a.png",
			AvatarImageKey:   "7/avatars/avatar-a.png",
		}
		avatarRepo.On("GetByID", mock.Anything, firstAvatarID).Return(avatar, nil)
		avatarRepo.On("Delete", mock.Anything, firstAvatarID, testUserID).Return(nil).Once()
		objects.On("Delete", mock.Anything, mock.Anything).Return(model.ErrStorageUnavailable)

		err := svc.DeleteAvatar(context.Background(), testUserID, firstAvatarID)
		assert.NoError(t, err)
	})
}
