package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cineasta-server/internal/mocks"
	"cineasta-server/internal/model"
	"cineasta-server/internal/service"
)

const testClassroomID = int64(5)

func newClassroomService(t *testing.T) (*service.ClassroomService, *mocks.MockClassroomRepository, *mocks.MockStoryRepository, *mocks.MockUserRepository) {
	classroomRepo := mocks.NewMockClassroomRepository(t)
	storyRepo := mocks.NewMockStoryRepository(t)
	userRepo := mocks.NewMockUserRepository(t)
	svc := service.NewClassroomService(classroomRepo, storyRepo, userRepo, zap.NewNop())
	return svc, classroomRepo, storyRepo, userRepo
}

func teacherUser() *model.User {
	return &model.User{ID: testUserID, Role: model.RoleTeacher}
}

func ownedClassroom() *model.Classroom {
	return &model.Classroom{ID: testClassroomID, TeacherID: testUserID, Name: "Turma A"}
}

func TestCreateClassroom(t *testing.T) {
	t.Run("teacher creates classroom", func(t *testing.T) {
		svc, classroomRepo, _, userRepo := newClassroomService(t)
		userRepo.On("GetByID", mock.Anything, testUserID).Return(teacherUser(), nil)
		classroomRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Classroom) bool {
			return c.TeacherID == testUserID && c.Name == "Turma A"
		})).Return(nil).Once()

		classroom, err := svc.CreateClassroom(context.Background(), testUserID, service.CreateClassroomInput{Name: "Turma A"})
		require.NoError(t, err)
		assert.Equal(t, testUserID, classroom.TeacherID)
	})

	t.Run("regular user is rejected", func(t *testing.T) {
		svc, classroomRepo, _, userRepo := newClassroomService(t)
		userRepo.On("GetByID", mock.Anything, testUserID).Return(&model.User{ID: testUserID, Role: model.RoleUser}, nil)

		_, err := svc.CreateClassroom(context.Background(), testUserID, service.CreateClassroomInput{Name: "Turma A"})
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		classroomRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAddStudent_ForeignClassroom(t *testing.T) {
	svc, classroomRepo, _, _ := newClassroomService(t)

	foreign := ownedClassroom()
	foreign.TeacherID = otherUserID
	classroomRepo.On("GetByID", mock.Anything, testClassroomID).Return(foreign, nil)

	_, err := svc.AddStudent(context.Background(), testUserID, service.AddStudentInput{
		ClassroomID: testClassroomID,
		StudentName: "Ana",
	})

	assert.ErrorIs(t, err, model.ErrNotFound)
	classroomRepo.AssertNotCalled(t, "AddStudent", mock.Anything, mock.Anything)
}

func TestShareStory(t *testing.T) {
	t.Run("completed story is shared", func(t *testing.T) {
		svc, classroomRepo, storyRepo, _ := newClassroomService(t)
		completed := draftStory()
		completed.Status = model.StatusCompleted
		classroomRepo.On("GetByID", mock.Anything, testClassroomID).Return(ownedClassroom(), nil)
		storyRepo.On("GetByID", mock.Anything, testStoryID).Return(completed, nil)
		classroomRepo.On("ShareStory", mock.Anything, mock.MatchedBy(func(s *model.ClassroomStory) bool {
			return s.ClassroomID == testClassroomID && s.StoryID == testStoryID
		})).Return(nil).Once()

		_, err := svc.ShareStory(context.Background(), testUserID, testClassroomID, testStoryID)
		assert.NoError(t, err)
	})

	t.Run("draft story cannot be shared", func(t *testing.T) {
		svc, classroomRepo, storyRepo, _ := newClassroomService(t)
		classroomRepo.On("GetByID", mock.Anything, testClassroomID).Return(ownedClassroom(), nil)
		storyRepo.On("GetByID", mock.Anything, testStoryID).Return(draftStory(), nil)

		_, err := svc.ShareStory(context.Background(), testUserID, testClassroomID, testStoryID)
		assert.ErrorIs(t, err, model.ErrBadRequest)
		classroomRepo.AssertNotCalled(t, "ShareStory", mock.Anything, mock.Anything)
	})

	t.Run("foreign story is not shared", func(t *testing.T) {
		svc, classroomRepo, storyRepo, _ := newClassroomService(t)
		foreign := draftStory()
		foreign.UserID = otherUserID
		foreign.Status = model.StatusCompleted
		classroomRepo.On("GetByID", mock.Anything, testClassroomID).Return(ownedClassroom(), nil)
		storyRepo.On("GetByID", mock.Anything, testStoryID).Return(foreign, nil)

		_, err := svc.ShareStory(context.Background(), testUserID, testClassroomID, testStoryID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
