package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cineasta-server/internal/model"
	"cineasta-server/internal/repository"
)

// ClassroomService реализует учительский режим: классы, ученики и
// расшаривание историй.
type ClassroomService struct {
	classrooms repository.ClassroomRepository
	stories    repository.StoryRepository
	users      repository.UserRepository
	logger     *zap.Logger
}

// NewClassroomService создает новый экземпляр сервиса классов.
func NewClassroomService(classrooms repository.ClassroomRepository, stories repository.StoryRepository, users repository.UserRepository, logger *zap.Logger) *ClassroomService {
	return &ClassroomService{
		classrooms: classrooms,
		stories:    stories,
		users:      users,
		logger:     logger.Named("ClassroomService"),
	}
}

// CreateClassroomInput - параметры создания класса.
type CreateClassroomInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	GradeLevel  *string `json:"gradeLevel"`
}

// CreateClassroom создает класс. Доступно только учителям и администраторам.
func (s *ClassroomService) CreateClassroom(ctx context.Context, userID int64, input CreateClassroomInput) (*model.Classroom, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleTeacher && user.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: требуется роль учителя", model.ErrUnauthorized)
	}

	classroom := &model.Classroom{
		TeacherID:   userID,
		Name:        input.Name,
		Description: input.Description,
		GradeLevel:  input.GradeLevel,
	}
	if err := s.classrooms.Create(ctx, classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

// ListClassrooms возвращает классы учителя.
func (s *ClassroomService) ListClassrooms(ctx context.Context, userID int64) ([]model.Classroom, error) {
	return s.classrooms.ListByTeacherID(ctx, userID)
}

// AddStudentInput - параметры добавления ученика.
type AddStudentInput struct {
	ClassroomID int64   `json:"classroomId" binding:"required"`
	StudentName string  `json:"studentName" binding:"required"`
	StudentCode *string `json:"studentCode"`
}

// AddStudent добавляет ученика в класс учителя.
func (s *ClassroomService) AddStudent(ctx context.Context, userID int64, input AddStudentInput) (*model.ClassroomStudent, error) {
	classroom, err := s.classrooms.GetByID(ctx, input.ClassroomID)
	if err != nil {
		return nil, err
	}
	if classroom.TeacherID != userID {
		return nil, model.ErrNotFound
	}

	student := &model.ClassroomStudent{
		ClassroomID: input.ClassroomID,
		StudentName: input.StudentName,
		StudentCode: input.StudentCode,
	}
	if err := s.classrooms.AddStudent(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// ListStudents возвращает учеников класса учителя.
func (s *ClassroomService) ListStudents(ctx context.Context, userID, classroomID int64) ([]model.ClassroomStudent, error) {
	classroom, err := s.classrooms.GetByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if classroom.TeacherID != userID {
		return nil, model.ErrNotFound
	}
	return s.classrooms.ListStudents(ctx, classroomID)
}

// ShareStory расшаривает историю учителя в его класс. Делиться можно
// только завершенной или опубликованной историей.
func (s *ClassroomService) ShareStory(ctx context.Context, userID, classroomID, storyID int64) (*model.ClassroomStory, error) {
	classroom, err := s.classrooms.GetByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if classroom.TeacherID != userID {
		return nil, model.ErrNotFound
	}

	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		return nil, model.ErrNotFound
	}
	if story.Status != model.StatusCompleted && story.Status != model.StatusPublished {
		return nil, fmt.Errorf("%w: история еще не сгенерирована", model.ErrBadRequest)
	}

	share := &model.ClassroomStory{
		ClassroomID: classroomID,
		StoryID:     storyID,
	}
	if err := s.classrooms.ShareStory(ctx, share); err != nil {
		return nil, err
	}
	s.logger.Info("Story shared to classroom", zap.Int64("classroomID", classroomID), zap.Int64("storyID", storyID))
	return share, nil
}
