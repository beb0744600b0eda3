package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cineasta-server/internal/model"
	"cineasta-server/internal/repository"
)

// MockStoryRepository is a mock type for the StoryRepository type
type MockStoryRepository struct {
	mock.Mock
}

func (_m *MockStoryRepository) Create(ctx context.Context, story *model.Story) error {
	ret := _m.Called(ctx, story)
	return ret.Error(0)
}

func (_m *MockStoryRepository) GetByID(ctx context.Context, id int64) (*model.Story, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Story)
	}
	return r0, ret.Error(1)
}

func (_m *MockStoryRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Story, error) {
	ret := _m.Called(ctx, userID)

	var r0 []model.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Story)
	}
	return r0, ret.Error(1)
}

func (_m *MockStoryRepository) UpdateStatus(ctx context.Context, id int64, status model.StoryStatus, errorDetails *string) error {
	ret := _m.Called(ctx, id, status, errorDetails)
	return ret.Error(0)
}

func (_m *MockStoryRepository) Delete(ctx context.Context, id, userID int64) error {
	ret := _m.Called(ctx, id, userID)
	return ret.Error(0)
}

func (_m *MockStoryRepository) GetChapters(ctx context.Context, storyID int64) ([]model.Chapter, error) {
	ret := _m.Called(ctx, storyID)

	var r0 []model.Chapter
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Chapter)
	}
	return r0, ret.Error(1)
}

func (_m *MockStoryRepository) GetCharacters(ctx context.Context, storyID int64) ([]model.StoryCharacter, error) {
	ret := _m.Called(ctx, storyID)

	var r0 []model.StoryCharacter
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.StoryCharacter)
	}
	return r0, ret.Error(1)
}

func (_m *MockStoryRepository) GetCharacterByID(ctx context.Context, id int64) (*model.StoryCharacter, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.StoryCharacter
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.StoryCharacter)
	}
	return r0, ret.Error(1)
}

func (_m *MockStoryRepository) SaveGeneratedScript(ctx context.Context, storyID int64, chapters []model.Chapter, characters []model.StoryCharacter) error {
	ret := _m.Called(ctx, storyID, chapters, characters)
	return ret.Error(0)
}

// NewMockStoryRepository creates a new instance of MockStoryRepository.
// The first argument is typically a *testing.T value.
func NewMockStoryRepository(t interface {
	mock.TestingT
	Helper()
}) *MockStoryRepository {
	m := &MockStoryRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.StoryRepository = (*MockStoryRepository)(nil)
