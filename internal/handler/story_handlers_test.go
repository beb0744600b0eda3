package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cineasta-server/internal/handler"
	"cineasta-server/internal/mocks"
	"cineasta-server/internal/model"
	"cineasta-server/internal/service"
)

const (
	testJWTSecret = "test-secret"
	testUserID    = int64(7)
	testStoryID   = int64(42)
)

type testEnv struct {
	router        *gin.Engine
	storyRepo     *mocks.MockStoryRepository
	avatarRepo    *mocks.MockAvatarRepository
	audioRepo     *mocks.MockAudioRepository
	classroomRepo *mocks.MockClassroomRepository
	userRepo      *mocks.MockUserRepository
	generator     *mocks.MockScriptGenerator
}

func setupRouter(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	env := &testEnv{
		storyRepo:     mocks.NewMockStoryRepository(t),
		avatarRepo:    mocks.NewMockAvatarRepository(t),
		audioRepo:     mocks.NewMockAudioRepository(t),
		classroomRepo: mocks.NewMockClassroomRepository(t),
		userRepo:      mocks.NewMockUserRepository(t),
		generator:     mocks.NewMockScriptGenerator(t),
	}

	objects := mocks.NewMockObjectStorage(t)
	imageGen := mocks.NewMockImageGenerator(t)
	transcriber := mocks.NewMockTranscriber(t)

	storyService := service.NewStoryService(env.storyRepo, env.avatarRepo, env.generator, log)
	avatarService := service.NewAvatarService(env.avatarRepo, objects, imageGen, log)
	audioService := service.NewAudioService(env.audioRepo, env.storyRepo, objects, transcriber, "pt", log)
	classroomService := service.NewClassroomService(env.classroomRepo, env.storyRepo, env.userRepo, log)
	userService := service.NewUserService(env.userRepo, log)

	h := handler.NewHandler(storyService, avatarService, audioService, classroomService, userService, testJWTSecret, log)

	env.router = gin.New()
	h.RegisterRoutes(env.router)
	return env
}

func makeToken(t *testing.T, userID int64) string {
	claims := jwt.MapClaims{
		"uid": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func doRequest(env *testEnv, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	env := setupRouter(t)

	w := doRequest(env, http.MethodGet, "/api/stories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateStory(t *testing.T) {
	env := setupRouter(t)
	token := makeToken(t, testUserID)

	env.storyRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Story) bool {
		return s.UserID == testUserID && s.Title == "A Magical Day"
	})).Run(func(args mock.Arguments) {
		story := args.Get(1).(*model.Story)
		story.ID = testStoryID
		story.Status = model.StatusDraft
	}).Return(nil).Once()

	w := doRequest(env, http.MethodPost, "/api/stories", token, gin.H{
		"title": "A Magical Day",
		"theme": "friendship",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var story model.Story
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &story))
	assert.Equal(t, testStoryID, story.ID)
	assert.Equal(t, model.StatusDraft, story.Status)
}

func TestCreateStory_InvalidBody(t *testing.T) {
	env := setupRouter(t)
	token := makeToken(t, testUserID)

	w := doRequest(env, http.MethodPost, "/api/stories", token, gin.H{"title": "no theme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStory_NotFound(t *testing.T) {
	env := setupRouter(t)
	token := makeToken(t, testUserID)

	env.storyRepo.On("GetByID", mock.Anything, testStoryID).Return(nil, model.ErrNotFound)

	w := doRequest(env, http.MethodGet, "/api/stories/42", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStory_InvalidID(t *testing.T) {
	env := setupRouter(t)
	token := makeToken(t, testUserID)

	w := doRequest(env, http.MethodGet, "/api/stories/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateScript_ConflictWhenAlreadyGenerating(t *testing.T) {
	env := setupRouter(t)
	token := makeToken(t, testUserID)

	env.storyRepo.On("GetByID", mock.Anything, testStoryID).Return(&model.Story{
		ID:     testStoryID,
		UserID: testUserID,
		Status: model.StatusGenerating,
	}, nil)

	w := doRequest(env, http.MethodPost, "/api/stories/42/generate", token, gin.H{
		"characterIds":     []int64{11},
		"numberOfChapters": 3,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGenerateScript_Success(t *testing.T) {
	env := setupRouter(t)
	token := makeToken(t, testUserID)

	env.storyRepo.On("GetByID", mock.Anything, testStoryID).Return(&model.Story{
		ID:     testStoryID,
		UserID: testUserID,
		Title:  "T",
		Theme:  "th",
		Status: model.StatusDraft,
	}, nil)
	env.avatarRepo.On("GetByID", mock.Anything, int64(11)).Return(&model.Avatar{ID: 11, UserID: testUserID, Name: "Lia"}, nil)
	env.storyRepo.On("UpdateStatus", mock.Anything, testStoryID, model.StatusGenerating, (*string)(nil)).Return(nil).Once()
	env.generator.On("GenerateScript", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"chapters":[{"chapterNumber":1,"title":"One","content":"Text","narratorText":"N"}]}`, nil)
	env.storyRepo.On("SaveGeneratedScript", mock.Anything, testStoryID, mock.Anything, mock.Anything).Return(nil).Once()
	env.storyRepo.On("UpdateStatus", mock.Anything, testStoryID, model.StatusCompleted, (*string)(nil)).Return(nil).Once()

	w := doRequest(env, http.MethodPost, "/api/stories/42/generate", token, gin.H{
		"characterIds":     []int64{11},
		"numberOfChapters": 1,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var result model.ScriptGenerationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.ChaptersCreated)
	assert.False(t, result.ParseRecovered)
}

func TestPublishStory(t *testing.T) {
	env := setupRouter(t)
	token := makeToken(t, testUserID)

	env.storyRepo.On("GetByID", mock.Anything, testStoryID).Return(&model.Story{
		ID:     testStoryID,
		UserID: testUserID,
		Status: model.StatusCompleted,
	}, nil)
	env.storyRepo.On("UpdateStatus", mock.Anything, testStoryID, model.StatusPublished, (*string)(nil)).Return(nil).Once()

	w := doRequest(env, http.MethodPost, "/api/stories/42/publish", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var story model.Story
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &story))
	assert.Equal(t, model.StatusPublished, story.Status)
}

func TestPublishStory_InvalidTransition(t *testing.T) {
	env := setupRouter(t)
	token := makeToken(t, testUserID)

	env.storyRepo.On("GetByID", mock.Anything, testStoryID).Return(&model.Story{
		ID:     testStoryID,
		UserID: testUserID,
		Status: model.StatusDraft,
	}, nil)

	w := doRequest(env, http.MethodPost, "/api/stories/42/publish", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestChangeStoryStatus(t *testing.T) {
	t.Run("unknown status is rejected", func(t *testing.T) {
		env := setupRouter(t)
		token := makeToken(t, testUserID)

		w := doRequest(env, http.MethodPost, "/api/stories/42/status", token, gin.H{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("illegal transition is rejected", func(t *testing.T) {
		env := setupRouter(t)
		token := makeToken(t, testUserID)

		env.storyRepo.On("GetByID", mock.Anything, testStoryID).Return(&model.Story{
			ID:     testStoryID,
			UserID: testUserID,
			Status: model.StatusCompleted,
		}, nil)

		w := doRequest(env, http.MethodPost, "/api/stories/42/status", token, gin.H{"status": "draft"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("legal transition is applied", func(t *testing.T) {
		env := setupRouter(t)
		token := makeToken(t, testUserID)

		env.storyRepo.On("GetByID", mock.Anything, testStoryID).Return(&model.Story{
			ID:     testStoryID,
			UserID: testUserID,
			Status: model.StatusCompleted,
		}, nil)
		env.storyRepo.On("UpdateStatus", mock.Anything, testStoryID, model.StatusPublished, (*string)(nil)).Return(nil).Once()

		w := doRequest(env, http.MethodPost, "/api/stories/42/status", token, gin.H{"status": "published"})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListStories_EmptyIsJSONArray(t *testing.T) {
	env := setupRouter(t)
	token := makeToken(t, testUserID)

	env.storyRepo.On("ListByUserID", mock.Anything, testUserID).Return(nil, nil)

	w := doRequest(env, http.MethodGet, "/api/stories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
