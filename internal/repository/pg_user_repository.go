package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(pool *pgxpool.Pool, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		pool:   pool,
		logger: logger.Named("PgUserRepo"),
	}
}

// GetByID retrieves a user by their ID.
func (r *pgUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, open_id, name, email, login_method, role, subscription_plan,
	                 subscription_expires_at, created_at, updated_at, last_signed_in
	          FROM users WHERE id = $1`
	var user model.User
	if err := pgxscan.Get(ctx, r.pool, &user, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found", zap.Int64("userID", id))
			return nil, model.ErrUserNotFound
		}
		r.logger.Error("Failed to get user", zap.Error(err), zap.Int64("userID", id))
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// UpdateSubscription меняет тарифный план пользователя. Для плана free
// expiresAt передается как nil.
func (r *pgUserRepository) UpdateSubscription(ctx context.Context, userID int64, plan model.SubscriptionPlan, expiresAt *time.Time) error {
	query := `UPDATE users SET subscription_plan = $1, subscription_expires_at = $2, updated_at = now() WHERE id = $3`
	tag, err := r.pool.Exec(ctx, query, plan, expiresAt, userID)
	if err != nil {
		r.logger.Error("Failed to update subscription", zap.Error(err), zap.Int64("userID", userID), zap.String("plan", string(plan)))
		return fmt.Errorf("failed to update subscription of user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	r.logger.Info("Subscription updated", zap.Int64("userID", userID), zap.String("plan", string(plan)))
	return nil
}
