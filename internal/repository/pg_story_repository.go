package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
)

// Compile-time check to ensure pgStoryRepository implements StoryRepository
var _ StoryRepository = (*pgStoryRepository)(nil)

type pgStoryRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgStoryRepository creates a new PostgreSQL-backed StoryRepository.
func NewPgStoryRepository(pool *pgxpool.Pool, logger *zap.Logger) StoryRepository {
	return &pgStoryRepository{
		pool:   pool,
		logger: logger.Named("PgStoryRepo"),
	}
}

// Create inserts a new story draft and fills in generated fields.
func (r *pgStoryRepository) Create(ctx context.Context, story *model.Story) error {
	query := `INSERT INTO stories (user_id, title, theme, target_age, educational_goal, status)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, status, is_public, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		story.UserID, story.Title, story.Theme, story.TargetAge, story.EducationalGoal, model.StatusDraft,
	).Scan(&story.ID, &story.Status, &story.IsPublic, &story.CreatedAt, &story.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create story", zap.Error(err), zap.Int64("userID", story.UserID))
		return fmt.Errorf("failed to create story: %w", err)
	}
	r.logger.Info("Story created", zap.Int64("storyID", story.ID), zap.Int64("userID", story.UserID))
	return nil
}

// GetByID retrieves a story by its ID without an ownership check;
// ownership is enforced by the service layer.
func (r *pgStoryRepository) GetByID(ctx context.Context, id int64) (*model.Story, error) {
	query := `SELECT id, user_id, title, theme, target_age, educational_goal, status, error_details,
	                 is_public, cover_image_url, cover_image_key, created_at, updated_at
	          FROM stories WHERE id = $1`
	var story model.Story
	if err := pgxscan.Get(ctx, r.pool, &story, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Story not found", zap.Int64("storyID", id))
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get story", zap.Error(err), zap.Int64("storyID", id))
		return nil, fmt.Errorf("failed to get story %d: %w", id, err)
	}
	return &story, nil
}

// ListByUserID returns the user's stories, newest first.
func (r *pgStoryRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Story, error) {
	query := `SELECT id, user_id, title, theme, target_age, educational_goal, status, error_details,
	                 is_public, cover_image_url, cover_image_key, created_at, updated_at
	          FROM stories WHERE user_id = $1 ORDER BY created_at DESC`
	var stories []model.Story
	if err := pgxscan.Select(ctx, r.pool, &stories, query, userID); err != nil {
		r.logger.Error("Failed to list stories", zap.Error(err), zap.Int64("userID", userID))
		return nil, fmt.Errorf("failed to list stories for user %d: %w", userID, err)
	}
	return stories, nil
}

// UpdateStatus записывает статус истории. Переходы валидируются на уровне
// сервиса, репозиторий пишет то, что ему дали.
func (r *pgStoryRepository) UpdateStatus(ctx context.Context, id int64, status model.StoryStatus, errorDetails *string) error {
	query := `UPDATE stories SET status = $1, error_details = $2, updated_at = now() WHERE id = $3`
	tag, err := r.pool.Exec(ctx, query, status, errorDetails, id)
	if err != nil {
		r.logger.Error("Failed to update story status", zap.Error(err), zap.Int64("storyID", id), zap.String("status", string(status)))
		return fmt.Errorf("failed to update status of story %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	r.logger.Info("Story status updated", zap.Int64("storyID", id), zap.String("status", string(status)))
	return nil
}

// Delete removes a story together with its chapters and characters.
// The ownership check is part of the DELETE so that a foreign story is
// indistinguishable from a missing one.
func (r *pgStoryRepository) Delete(ctx context.Context, id, userID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM stories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete story", zap.Error(err), zap.Int64("storyID", id))
		return fmt.Errorf("failed to delete story %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM chapters WHERE story_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete chapters of story %d: %w", id, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM story_characters WHERE story_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete characters of story %d: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete of story %d: %w", id, err)
	}
	r.logger.Info("Story deleted", zap.Int64("storyID", id), zap.Int64("userID", userID))
	return nil
}

// GetChapters returns the chapters of a story ordered by chapter number.
func (r *pgStoryRepository) GetChapters(ctx context.Context, storyID int64) ([]model.Chapter, error) {
	query := `SELECT id, story_id, chapter_number, title, content, narrator_text, created_at, updated_at
	          FROM chapters WHERE story_id = $1 ORDER BY chapter_number ASC`
	var chapters []model.Chapter
	if err := pgxscan.Select(ctx, r.pool, &chapters, query, storyID); err != nil {
		r.logger.Error("Failed to get chapters", zap.Error(err), zap.Int64("storyID", storyID))
		return nil, fmt.Errorf("failed to get chapters of story %d: %w", storyID, err)
	}
	return chapters, nil
}

// GetCharacters returns the characters of a story in insertion order.
func (r *pgStoryRepository) GetCharacters(ctx context.Context, storyID int64) ([]model.StoryCharacter, error) {
	query := `SELECT id, story_id, avatar_id, character_name, character_role, character_description, created_at
	          FROM story_characters WHERE story_id = $1 ORDER BY id ASC`
	var characters []model.StoryCharacter
	if err := pgxscan.Select(ctx, r.pool, &characters, query, storyID); err != nil {
		r.logger.Error("Failed to get story characters", zap.Error(err), zap.Int64("storyID", storyID))
		return nil, fmt.Errorf("failed to get characters of story %d: %w", storyID, err)
	}
	return characters, nil
}

// GetCharacterByID retrieves a single story character.
func (r *pgStoryRepository) GetCharacterByID(ctx context.Context, id int64) (*model.StoryCharacter, error) {
	query := `SELECT id, story_id, avatar_id, character_name, character_role, character_description, created_at
	          FROM story_characters WHERE id = $1`
	var character model.StoryCharacter
	if err := pgxscan.Get(ctx, r.pool, &character, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get story character", zap.Error(err), zap.Int64("characterID", id))
		return nil, fmt.Errorf("failed to get story character %d: %w", id, err)
	}
	return &character, nil
}

// SaveGeneratedScript пишет главы и персонажей одного прогона генерации в
// одной транзакции. Прошлые прогоны по этой истории предварительно
// вычищаются, чтобы повторная генерация не дублировала строки.
func (r *pgStoryRepository) SaveGeneratedScript(ctx context.Context, storyID int64, chapters []model.Chapter, characters []model.StoryCharacter) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin script transaction", zap.Error(err), zap.Int64("storyID", storyID))
		return fmt.Errorf("failed to begin script transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM chapters WHERE story_id = $1`, storyID); err != nil {
		return fmt.Errorf("failed to clear previous chapters of story %d: %w", storyID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM story_characters WHERE story_id = $1`, storyID); err != nil {
		return fmt.Errorf("failed to clear previous characters of story %d: %w", storyID, err)
	}

	chapterQuery := `INSERT INTO chapters (story_id, chapter_number, title, content, narrator_text)
	                 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	for i := range chapters {
		ch := &chapters[i]
		err := tx.QueryRow(ctx, chapterQuery, storyID, ch.ChapterNumber, ch.Title, ch.Content, ch.NarratorText).
			Scan(&ch.ID, &ch.CreatedAt, &ch.UpdatedAt)
		if err != nil {
			r.logger.Error("Failed to insert chapter", zap.Error(err), zap.Int64("storyID", storyID), zap.Int("chapterNumber", ch.ChapterNumber))
			return fmt.Errorf("failed to insert chapter %d of story %d: %w", ch.ChapterNumber, storyID, err)
		}
		ch.StoryID = storyID
	}

	characterQuery := `INSERT INTO story_characters (story_id, avatar_id, character_name, character_role, character_description)
	                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	for i := range characters {
		c := &characters[i]
		err := tx.QueryRow(ctx, characterQuery, storyID, c.AvatarID, c.CharacterName, c.CharacterRole, c.CharacterDescription).
			Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			r.logger.Error("Failed to insert story character", zap.Error(err), zap.Int64("storyID", storyID), zap.Int64("avatarID", c.AvatarID))
			return fmt.Errorf("failed to insert character for story %d: %w", storyID, err)
		}
		c.StoryID = storyID
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit script transaction", zap.Error(err), zap.Int64("storyID", storyID))
		return fmt.Errorf("failed to commit script of story %d: %w", storyID, err)
	}
	r.logger.Info("Generated script saved",
		zap.Int64("storyID", storyID),
		zap.Int("chapters", len(chapters)),
		zap.Int("characters", len(characters)))
	return nil
}
