package model

import "fmt"

// StoryStatus определяет возможные статусы истории.
// Совпадает с типом ENUM 'story_status' в БД.
type StoryStatus string

const (
	StatusDraft      StoryStatus = "draft"      // Создана, главы еще не генерировались
	StatusGenerating StoryStatus = "generating" // Идет генерация сценария
	StatusCompleted  StoryStatus = "completed"  // Главы и персонажи сохранены
	StatusFailed     StoryStatus = "failed"     // Генерация прервана ошибкой, детали в error_details
	StatusPublished  StoryStatus = "published"  // Опубликована вручную владельцем
)

// storyTransitions - таблица допустимых переходов статусов.
// Любая запись статуса (и из воркфлоу генерации, и через ручной эндпоинт)
// проверяется по этой таблице; переходы вне её отклоняются с ErrInvalidTransition.
var storyTransitions = map[StoryStatus][]StoryStatus{
	StatusDraft:      {StatusGenerating},
	StatusGenerating: {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusPublished},
	StatusFailed:     {StatusGenerating}, // повторный запуск генерации
	StatusPublished:  {StatusCompleted},  // снятие с публикации
}

// IsValid проверяет, что значение является известным статусом.
func (s StoryStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusGenerating, StatusCompleted, StatusFailed, StatusPublished:
		return true
	}
	return false
}

// CanTransitionTo сообщает, разрешен ли переход s -> next.
func (s StoryStatus) CanTransitionTo(next StoryStatus) bool {
	for _, allowed := range storyTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseStoryStatus разбирает строку в StoryStatus.
func ParseStoryStatus(raw string) (StoryStatus, error) {
	s := StoryStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown story status %q", ErrBadRequest, raw)
	}
	return s, nil
}
