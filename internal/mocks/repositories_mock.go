package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"cineasta-server/internal/model"
	"cineasta-server/internal/repository"
)

// MockAudioRepository is a mock type for the AudioRepository type
type MockAudioRepository struct {
	mock.Mock
}

func (_m *MockAudioRepository) Create(ctx context.Context, audio *model.CharacterAudio) error {
	ret := _m.Called(ctx, audio)
	return ret.Error(0)
}

func (_m *MockAudioRepository) ListByCharacter(ctx context.Context, storyCharacterID int64) ([]model.CharacterAudio, error) {
	ret := _m.Called(ctx, storyCharacterID)

	var r0 []model.CharacterAudio
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.CharacterAudio)
	}
	return r0, ret.Error(1)
}

// NewMockAudioRepository creates a new instance of MockAudioRepository.
func NewMockAudioRepository(t interface {
	mock.TestingT
	Helper()
}) *MockAudioRepository {
	m := &MockAudioRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.AudioRepository = (*MockAudioRepository)(nil)

// MockClassroomRepository is a mock type for the ClassroomRepository type
type MockClassroomRepository struct {
	mock.Mock
}

func (_m *MockClassroomRepository) Create(ctx context.Context, classroom *model.Classroom) error {
	ret := _m.Called(ctx, classroom)
	return ret.Error(0)
}

func (_m *MockClassroomRepository) GetByID(ctx context.Context, id int64) (*model.Classroom, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.Classroom
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Classroom)
	}
	return r0, ret.Error(1)
}

func (_m *MockClassroomRepository) ListByTeacherID(ctx context.Context, teacherID int64) ([]model.Classroom, error) {
	ret := _m.Called(ctx, teacherID)

	var r0 []model.Classroom
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Classroom)
	}
	return r0, ret.Error(1)
}

func (_m *MockClassroomRepository) AddStudent(ctx context.Context, student *model.ClassroomStudent) error {
	ret := _m.Called(ctx, student)
	return ret.Error(0)
}

func (_m *MockClassroomRepository) ListStudents(ctx context.Context, classroomID int64) ([]model.ClassroomStudent, error) {
	ret := _m.Called(ctx, classroomID)

	var r0 []model.ClassroomStudent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.ClassroomStudent)
	}
	return r0, ret.Error(1)
}

func (_m *MockClassroomRepository) ShareStory(ctx context.Context, share *model.ClassroomStory) error {
	ret := _m.Called(ctx, share)
	return ret.Error(0)
}

// NewMockClassroomRepository creates a new instance of MockClassroomRepository.
func NewMockClassroomRepository(t interface {
	mock.TestingT
	Helper()
}) *MockClassroomRepository {
	m := &MockClassroomRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.ClassroomRepository = (*MockClassroomRepository)(nil)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

func (_m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockUserRepository) UpdateSubscription(ctx context.Context, userID int64, plan model.SubscriptionPlan, expiresAt *time.Time) error {
	ret := _m.Called(ctx, userID, plan, expiresAt)
	return ret.Error(0)
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository(t interface {
	mock.TestingT
	Helper()
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.UserRepository = (*MockUserRepository)(nil)
