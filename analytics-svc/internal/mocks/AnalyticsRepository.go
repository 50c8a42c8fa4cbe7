package mocks

import (
	context "context"

	domain "ginraidee/analytics-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// AnalyticsRepository is a mock type for the AnalyticsRepository type
type AnalyticsRepository struct {
	mock.Mock
}

// Dashboard provides a mock function with given fields: ctx
func (_m *AnalyticsRepository) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.DashboardStats), ret.Error(1)
}

func foodCounts(ret mock.Arguments) ([]domain.FoodCount, error) {
	var r0 []domain.FoodCount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.FoodCount)
	}
	return r0, ret.Error(1)
}

// PopularFoods provides a mock function with given fields: ctx, days, limit
func (_m *AnalyticsRepository) PopularFoods(ctx context.Context, days int, limit int) ([]domain.FoodCount, error) {
	return foodCounts(_m.Called(ctx, days, limit))
}

// SelectionCounts provides a mock function with given fields: ctx
func (_m *AnalyticsRepository) SelectionCounts(ctx context.Context) ([]domain.FoodCount, error) {
	return foodCounts(_m.Called(ctx))
}

// TopSelectedToday provides a mock function with given fields: ctx, limit
func (_m *AnalyticsRepository) TopSelectedToday(ctx context.Context, limit int) ([]domain.FoodCount, error) {
	return foodCounts(_m.Called(ctx, limit))
}

// TopSelectedAllTime provides a mock function with given fields: ctx, limit
func (_m *AnalyticsRepository) TopSelectedAllTime(ctx context.Context, limit int) ([]domain.FoodCount, error) {
	return foodCounts(_m.Called(ctx, limit))
}

// FeedbackTotals provides a mock function with given fields: ctx
func (_m *AnalyticsRepository) FeedbackTotals(ctx context.Context) (int, int, error) {
	ret := _m.Called(ctx)
	return ret.Int(0), ret.Int(1), ret.Error(2)
}

// TopFeedback provides a mock function with given fields: ctx, action, limit
func (_m *AnalyticsRepository) TopFeedback(ctx context.Context, action string, limit int) ([]domain.FoodCount, error) {
	return foodCounts(_m.Called(ctx, action, limit))
}

// RecentUsers provides a mock function with given fields: ctx, limit
func (_m *AnalyticsRepository) RecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	ret := _m.Called(ctx, limit)

	var r0 []domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.User)
	}
	return r0, ret.Error(1)
}

// ListUsers provides a mock function with given fields: ctx, limit, offset
func (_m *AnalyticsRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, int, error) {
	ret := _m.Called(ctx, limit, offset)

	var r0 []domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.User)
	}
	return r0, ret.Int(1), ret.Error(2)
}

// GetUser provides a mock function with given fields: ctx, id
func (_m *AnalyticsRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

// UserSelections provides a mock function with given fields: ctx, id, limit
func (_m *AnalyticsRepository) UserSelections(ctx context.Context, id string, limit int) ([]domain.UserSelection, error) {
	ret := _m.Called(ctx, id, limit)

	var r0 []domain.UserSelection
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.UserSelection)
	}
	return r0, ret.Error(1)
}

// DeleteUser provides a mock function with given fields: ctx, id
func (_m *AnalyticsRepository) DeleteUser(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewAnalyticsRepository creates a new instance of AnalyticsRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAnalyticsRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *AnalyticsRepository {
	m := &AnalyticsRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
