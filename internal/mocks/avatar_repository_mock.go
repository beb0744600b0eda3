package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cineasta-server/internal/model"
	"cineasta-server/internal/repository"
)

// MockAvatarRepository is a mock type for the AvatarRepository type
type MockAvatarRepository struct {
	mock.Mock
}

func (_m *MockAvatarRepository) Create(ctx context.Context, avatar *model.Avatar) error {
	ret := _m.Called(ctx, avatar)
	return ret.Error(0)
}

func (_m *MockAvatarRepository) GetByID(ctx context.Context, id int64) (*model.Avatar, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.Avatar
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Avatar)
	}
	return r0, ret.Error(1)
}

func (_m *MockAvatarRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Avatar, error) {
	ret := _m.Called(ctx, userID)

	var r0 []model.Avatar
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Avatar)
	}
	return r0, ret.Error(1)
}

func (_m *MockAvatarRepository) Delete(ctx context.Context, id, userID int64) error {
	ret := _m.Called(ctx, id, userID)
	return ret.Error(0)
}

// NewMockAvatarRepository creates a new instance of MockAvatarRepository.
// The first argument is typically a *testing.T value.
func NewMockAvatarRepository(t interface {
	mock.TestingT
	Helper()
}) *MockAvatarRepository {
	m := &MockAvatarRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.AvatarRepository = (*MockAvatarRepository)(nil)
