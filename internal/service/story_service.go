package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cineasta-server/internal/model"
	"cineasta-server/internal/repository"
	"cineasta-server/pkg/ai"
)

// Ограничения запроса генерации сценария.
const (
	minChapters = 1
	maxChapters = 10
)

// ScriptGenerator генерирует сырой текст сценария по паре промптов.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// StoryService реализует жизненный цикл историй и оркестрацию генерации.
type StoryService struct {
	stories repository.StoryRepository
	avatars repository.AvatarRepository
	ai      ScriptGenerator
	logger  *zap.Logger
}

// NewStoryService создает новый экземпляр сервиса историй.
func NewStoryService(stories repository.StoryRepository, avatars repository.AvatarRepository, generator ScriptGenerator, logger *zap.Logger) *StoryService {
	return &StoryService{
		stories: stories,
		avatars: avatars,
		ai:      generator,
		logger:  logger.Named("StoryService"),
	}
}

// CreateStoryInput - параметры создания черновика истории.
type CreateStoryInput struct {
	Title           string  `json:"title" binding:"required"`
	Theme           string  `json:"theme" binding:"required"`
	TargetAge       *int    `json:"targetAge"`
	EducationalGoal *string `json:"educationalGoal"`
}

// CreateStory создает историю в статусе draft.
func (s *StoryService) CreateStory(ctx context.Context, userID int64, input CreateStoryInput) (*model.Story, error) {
	if input.Title == "" || input.Theme == "" {
		return nil, fmt.Errorf("%w: title и theme обязательны", model.ErrBadRequest)
	}

	story := &model.Story{
		UserID:          userID,
		Title:           input.Title,
		Theme:           input.Theme,
		TargetAge:       input.TargetAge,
		EducationalGoal: input.EducationalGoal,
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// ListStories возвращает истории пользователя.
func (s *StoryService) ListStories(ctx context.Context, userID int64) ([]model.Story, error) {
	return s.stories.ListByUserID(ctx, userID)
}

// GetStoryDetails возвращает историю с главами и персонажами.
// Чужая непубличная история неотличима от несуществующей.
func (s *StoryService) GetStoryDetails(ctx context.Context, userID, storyID int64) (*model.StoryDetails, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID && story.Status != model.StatusPublished {
		return nil, model.ErrNotFound
	}

	chapters, err := s.stories.GetChapters(ctx, storyID)
	if err != nil {
		return nil, err
	}
	characters, err := s.stories.GetCharacters(ctx, storyID)
	if err != nil {
		return nil, err
	}

	return &model.StoryDetails{
		Story:      *story,
		Chapters:   chapters,
		Characters: characters,
	}, nil
}

// DeleteStory удаляет историю пользователя вместе с главами и персонажами.
func (s *StoryService) DeleteStory(ctx context.Context, userID, storyID int64) error {
	return s.stories.Delete(ctx, storyID, userID)
}

// UpdateStatus выполняет ручной переход статуса (публикация и снятие с
// публикации). Переход проверяется по таблице допустимых переходов;
// попадание в статусы воркфлоу генерации отсюда тоже проверяется ею.
func (s *StoryService) UpdateStatus(ctx context.Context, userID, storyID int64, next model.StoryStatus) (*model.Story, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		return nil, model.ErrNotFound
	}
	if !story.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, story.Status, next)
	}

	if err := s.stories.UpdateStatus(ctx, storyID, next, nil); err != nil {
		return nil, err
	}
	story.Status = next
	story.ErrorDetails = nil
	return story, nil
}

// GenerateScript выполняет полный прогон генерации сценария: проверяет
// владение и переход статуса, собирает персонажей из аватаров, вызывает
// генерацию, сохраняет результат транзакционно и завершает историю.
// Любая ошибка после перехода в generating переводит историю в failed
// с текстом причины; неразборчивый ответ модели ошибкой не считается и
// завершает историю пустым списком глав.
func (s *StoryService) GenerateScript(ctx context.Context, userID int64, input model.GenerateScriptInput) (result *model.ScriptGenerationResult, err error) {
	log := s.logger.With(zap.Int64("storyID", input.StoryID), zap.Int64("userID", userID))

	if input.NumberOfChapters < minChapters || input.NumberOfChapters > maxChapters {
		return nil, fmt.Errorf("%w: numberOfChapters должен быть от %d до %d", model.ErrBadRequest, minChapters, maxChapters)
	}
	if len(input.CharacterIDs) == 0 {
		return nil, fmt.Errorf("%w: требуется хотя бы один персонаж", model.ErrBadRequest)
	}

	story, err := s.stories.GetByID(ctx, input.StoryID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		return nil, model.ErrNotFound
	}
	if !story.Status.CanTransitionTo(model.StatusGenerating) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, story.Status, model.StatusGenerating)
	}

	// Аватары резолвятся параллельно с сохранением порядка запроса.
	// Отсутствующий аватар пропускается, а не валит весь запрос.
	resolved := make([]*model.Avatar, len(input.CharacterIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, avatarID := range input.CharacterIDs {
		g.Go(func() error {
			avatar, avatarErr := s.avatars.GetByID(gctx, avatarID)
			if avatarErr != nil {
				if errors.Is(avatarErr, model.ErrNotFound) {
					log.Warn("Avatar not found, skipping character", zap.Int64("avatarID", avatarID))
					return nil
				}
				return avatarErr
			}
			resolved[i] = avatar
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	if err = s.stories.UpdateStatus(ctx, input.StoryID, model.StatusGenerating, nil); err != nil {
		return nil, err
	}
	log.Info("Story generation started")

	// Страховочный обработчик: история не должна застрять в generating.
	defer func() {
		if err == nil {
			return
		}
		details := err.Error()
		failCtx := context.WithoutCancel(ctx)
		if updErr := s.stories.UpdateStatus(failCtx, input.StoryID, model.StatusFailed, &details); updErr != nil {
			log.Error("Failed to mark story as failed", zap.Error(updErr))
		} else {
			log.Warn("Story generation failed", zap.String("reason", details))
		}
	}()

	characterNames := make([]string, 0, len(resolved))
	for _, avatar := range resolved {
		if avatar != nil {
			characterNames = append(characterNames, avatar.Name)
		}
	}

	userPrompt := BuildScriptPrompt(story, characterNames, input.NumberOfChapters)

	raw, err := s.ai.GenerateScript(ctx, scriptSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	parseRecovered := false
	script, parseErr := ai.ParseScript(raw)
	if parseErr != nil {
		if !errors.Is(parseErr, model.ErrParseFailed) {
			err = parseErr
			return nil, err
		}
		// Ответ не разобрался: продолжаем с пустым сценарием, история
		// все равно завершится успешно.
		log.Warn("Script response unparsable, recovering with empty script", zap.Error(parseErr))
		script = ai.EmptyScript()
		parseRecovered = true
	}

	chapters := make([]model.Chapter, 0, len(script.Chapters))
	for _, ch := range script.Chapters {
		chapter := model.Chapter{
			StoryID:       input.StoryID,
			ChapterNumber: ch.ChapterNumber,
			Title:         ch.Title,
			Content:       ch.Content,
		}
		if ch.NarratorText != "" {
			narrator := ch.NarratorText
			chapter.NarratorText = &narrator
		}
		chapters = append(chapters, chapter)
	}

	characters := make([]model.StoryCharacter, 0, len(resolved))
	for _, avatar := range resolved {
		if avatar == nil {
			continue
		}
		role := model.RoleSupporting
		if len(characters) == 0 {
			role = model.RoleProtagonist
		}
		description := fmt.Sprintf("Character based on avatar %s", avatar.Name)
		characters = append(characters, model.StoryCharacter{
			StoryID:              input.StoryID,
			AvatarID:             avatar.ID,
			CharacterName:        avatar.Name,
			CharacterRole:        role,
			CharacterDescription: &description,
		})
	}

	// Количество глав - пожелание, а не контракт: сохраняем столько,
	// сколько вернула модель.
	if len(chapters) != input.NumberOfChapters {
		log.Warn("Chapter count differs from requested",
			zap.Int("requested", input.NumberOfChapters),
			zap.Int("received", len(chapters)))
	}

	if err = s.stories.SaveGeneratedScript(ctx, input.StoryID, chapters, characters); err != nil {
		return nil, err
	}
	if err = s.stories.UpdateStatus(ctx, input.StoryID, model.StatusCompleted, nil); err != nil {
		return nil, err
	}

	log.Info("Story generation completed",
		zap.Int("chapters", len(chapters)),
		zap.Int("characters", len(characters)),
		zap.Bool("parseRecovered", parseRecovered))

	return &model.ScriptGenerationResult{
		ChaptersCreated:   len(chapters),
		CharactersLinked:  len(characters),
		RequestedChapters: input.NumberOfChapters,
		ParseRecovered:    parseRecovered,
	}, nil
}
