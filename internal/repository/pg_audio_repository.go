package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
)

// Compile-time check to ensure pgAudioRepository implements AudioRepository
var _ AudioRepository = (*pgAudioRepository)(nil)

type pgAudioRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgAudioRepository creates a new PostgreSQL-backed AudioRepository.
func NewPgAudioRepository(pool *pgxpool.Pool, logger *zap.Logger) AudioRepository {
	return &pgAudioRepository{
		pool:   pool,
		logger: logger.Named("PgAudioRepo"),
	}
}

// Create inserts a new character audio record.
func (r *pgAudioRepository) Create(ctx context.Context, audio *model.CharacterAudio) error {
	query := `INSERT INTO character_audios (story_character_id, chapter_id, audio_url, audio_key, duration, transcription)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		audio.StoryCharacterID, audio.ChapterID, audio.AudioURL, audio.AudioKey, audio.Duration, audio.Transcription,
	).Scan(&audio.ID, &audio.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create character audio", zap.Error(err), zap.Int64("storyCharacterID", audio.StoryCharacterID))
		return fmt.Errorf("failed to create character audio: %w", err)
	}
	r.logger.Info("Character audio created", zap.Int64("audioID", audio.ID), zap.Int64("storyCharacterID", audio.StoryCharacterID))
	return nil
}

// ListByCharacter returns the audios of a story character, newest first.
func (r *pgAudioRepository) ListByCharacter(ctx context.Context, storyCharacterID int64) ([]model.CharacterAudio, error) {
	query := `SELECT id, story_character_id, chapter_id, audio_url, audio_key, duration, transcription, created_at
	          FROM character_audios WHERE story_character_id = $1 ORDER BY created_at DESC`
	var audios []model.CharacterAudio
	if err := pgxscan.Select(ctx, r.pool, &audios, query, storyCharacterID); err != nil {
		r.logger.Error("Failed to list character audios", zap.Error(err), zap.Int64("storyCharacterID", storyCharacterID))
		return nil, fmt.Errorf("failed to list audios of character %d: %w", storyCharacterID, err)
	}
	return audios, nil
}
