package repository

import (
	"context"
	"time"

	"cineasta-server/internal/model"
)

// StoryRepository предоставляет доступ к историям, главам и персонажам.
type StoryRepository interface {
	Create(ctx context.Context, story *model.Story) error
	GetByID(ctx context.Context, id int64) (*model.Story, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Story, error)
	// UpdateStatus записывает новый статус; errorDetails заполняется только
	// для статуса failed, для остальных передается nil (поле очищается).
	UpdateStatus(ctx context.Context, id int64, status model.StoryStatus, errorDetails *string) error
	Delete(ctx context.Context, id, userID int64) error

	GetChapters(ctx context.Context, storyID int64) ([]model.Chapter, error)
	GetCharacters(ctx context.Context, storyID int64) ([]model.StoryCharacter, error)
	GetCharacterByID(ctx context.Context, id int64) (*model.StoryCharacter, error)

	// SaveGeneratedScript сохраняет главы и персонажей одного прогона
	// генерации в единой транзакции: записывается либо все, либо ничего.
	SaveGeneratedScript(ctx context.Context, storyID int64, chapters []model.Chapter, characters []model.StoryCharacter) error
}

// AvatarRepository предоставляет доступ к аватарам.
type AvatarRepository interface {
	Create(ctx context.Context, avatar *model.Avatar) error
	// GetByID намеренно не проверяет владельца: аватары читаются и при
	// сборке персонажей чужих опубликованных историй.
	GetByID(ctx context.Context, id int64) (*model.Avatar, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Avatar, error)
	// Delete - жесткое удаление без каскада на story_characters.
	Delete(ctx context.Context, id, userID int64) error
}

// AudioRepository предоставляет доступ к аудиозаписям персонажей.
type AudioRepository interface {
	Create(ctx context.Context, audio *model.CharacterAudio) error
	ListByCharacter(ctx context.Context, storyCharacterID int64) ([]model.CharacterAudio, error)
}

// ClassroomRepository предоставляет доступ к классам учителей.
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	GetByID(ctx context.Context, id int64) (*model.Classroom, error)
	ListByTeacherID(ctx context.Context, teacherID int64) ([]model.Classroom, error)
	AddStudent(ctx context.Context, student *model.ClassroomStudent) error
	ListStudents(ctx context.Context, classroomID int64) ([]model.ClassroomStudent, error)
	ShareStory(ctx context.Context, share *model.ClassroomStory) error
}

// UserRepository предоставляет доступ к пользователям и их подпискам.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateSubscription(ctx context.Context, userID int64, plan model.SubscriptionPlan, expiresAt *time.Time) error
}
