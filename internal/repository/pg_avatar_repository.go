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

// Compile-time check to ensure pgAvatarRepository implements AvatarRepository
var _ AvatarRepository = (*pgAvatarRepository)(nil)

type pgAvatarRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgAvatarRepository creates a new PostgreSQL-backed AvatarRepository.
func NewPgAvatarRepository(pool *pgxpool.Pool, logger *zap.Logger) AvatarRepository {
	return &pgAvatarRepository{
		pool:   pool,
		logger: logger.Named("PgAvatarRepo"),
	}
}

// Create inserts a new avatar and fills in generated fields.
func (r *pgAvatarRepository) Create(ctx context.Context, avatar *model.Avatar) error {
	query := `INSERT INTO avatars (user_id, name, original_photo_url, original_photo_key,
	                               avatar_image_url, avatar_image_key, generation_prompt, is_public)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		avatar.UserID, avatar.Name, avatar.OriginalPhotoURL, avatar.OriginalPhotoKey,
		avatar.AvatarImageURL, avatar.AvatarImageKey, avatar.GenerationPrompt, avatar.IsPublic,
	).Scan(&avatar.ID, &avatar.CreatedAt, &avatar.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create avatar", zap.Error(err), zap.Int64("userID", avatar.UserID))
		return fmt.Errorf("failed to create avatar: %w", err)
	}
	r.logger.Info("Avatar created", zap.Int64("avatarID", avatar.ID), zap.Int64("userID", avatar.UserID))
	return nil
}

// GetByID retrieves an avatar by ID. Владельца не проверяем.
func (r *pgAvatarRepository) GetByID(ctx context.Context, id int64) (*model.Avatar, error) {
	query := `SELECT id, user_id, name, original_photo_url, original_photo_key,
	                 avatar_image_url, avatar_image_key, generation_prompt, is_public, created_at, updated_at
	          FROM avatars WHERE id = $1`
	var avatar model.Avatar
	if err := pgxscan.Get(ctx, r.pool, &avatar, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Avatar not found", zap.Int64("avatarID", id))
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get avatar", zap.Error(err), zap.Int64("avatarID", id))
		return nil, fmt.Errorf("failed to get avatar %d: %w", id, err)
	}
	return &avatar, nil
}

// ListByUserID returns the user's avatars, newest first.
func (r *pgAvatarRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Avatar, error) {
	query := `SELECT id, user_id, name, original_photo_url, original_photo_key,
	                 avatar_image_url, avatar_image_key, generation_prompt, is_public, created_at, updated_at
	          FROM avatars WHERE user_id = $1 ORDER BY created_at DESC`
	var avatars []model.Avatar
	if err := pgxscan.Select(ctx, r.pool, &avatars, query, userID); err != nil {
		r.logger.Error("Failed to list avatars", zap.Error(err), zap.Int64("userID", userID))
		return nil, fmt.Errorf("failed to list avatars for user %d: %w", userID, err)
	}
	return avatars, nil
}

// Delete removes an avatar owned by the user. Записи story_characters,
// ссылающиеся на аватар, не трогаем: персонажи уже созданных историй
// остаются с устаревшей ссылкой.
func (r *pgAvatarRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM avatars WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete avatar", zap.Error(err), zap.Int64("avatarID", id))
		return fmt.Errorf("failed to delete avatar %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	r.logger.Info("Avatar deleted", zap.Int64("avatarID", id), zap.Int64("userID", userID))
	return nil
}
