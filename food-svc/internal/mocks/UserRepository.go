package mocks

import (
	context "context"

	domain "ginraidee/food-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// UserRepository is a mock type for the UserRepository type
type UserRepository struct {
	mock.Mock
}

// GetUser provides a mock function with given fields: ctx, id
func (_m *UserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

// CreateUser provides a mock function with given fields: ctx, user
func (_m *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

// TouchUser provides a mock function with given fields: ctx, id
func (_m *UserRepository) TouchUser(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// InsertPageView provides a mock function with given fields: ctx, pv
func (_m *UserRepository) InsertPageView(ctx context.Context, pv *domain.PageView) error {
	ret := _m.Called(ctx, pv)
	return ret.Error(0)
}

// ListSelections provides a mock function with given fields: ctx, userID, limit
func (_m *UserRepository) ListSelections(ctx context.Context, userID string, limit int) ([]domain.SelectionRecord, error) {
	ret := _m.Called(ctx, userID, limit)

	var r0 []domain.SelectionRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.SelectionRecord)
	}
	return r0, ret.Error(1)
}

// NewUserRepository creates a new instance of UserRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
