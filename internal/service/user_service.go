package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cineasta-server/internal/model"
	"cineasta-server/internal/repository"
)

// Длительность платной подписки после апгрейда.
const premiumDuration = 30 * 24 * time.Hour

// UserService реализует профиль пользователя и управление подпиской.
type UserService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewUserService создает новый экземпляр сервиса пользователей.
func NewUserService(users repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger.Named("UserService"),
	}
}

// GetProfile возвращает пользователя по ID.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpgradeSubscription переводит пользователя на premium на 30 дней.
func (s *UserService) UpgradeSubscription(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(premiumDuration)
	if err := s.users.UpdateSubscription(ctx, userID, model.PlanPremium, &expiresAt); err != nil {
		return nil, err
	}

	user.SubscriptionPlan = model.PlanPremium
	user.SubscriptionExpiresAt = &expiresAt
	s.logger.Info("Subscription upgraded", zap.Int64("userID", userID))
	return user, nil
}

// CancelSubscription возвращает пользователя на бесплатный план.
func (s *UserService) CancelSubscription(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateSubscription(ctx, userID, model.PlanFree, nil); err != nil {
		return nil, err
	}

	user.SubscriptionPlan = model.PlanFree
	user.SubscriptionExpiresAt = nil
	s.logger.Info("Subscription canceled", zap.Int64("userID", userID))
	return user, nil
}
