package mocks

import (
	context "context"

	domain "ginraidee/analytics-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// Leaderboard is a mock type for the Leaderboard type
type Leaderboard struct {
	mock.Mock
}

// Top provides a mock function with given fields: ctx, key, limit
func (_m *Leaderboard) Top(ctx context.Context, key string, limit int) ([]domain.FoodCount, error) {
	return foodCounts(_m.Called(ctx, key, limit))
}

// TopMembers provides a mock function with given fields: ctx, key, limit
func (_m *Leaderboard) TopMembers(ctx context.Context, key string, limit int) (map[string]float64, error) {
	ret := _m.Called(ctx, key, limit)

	var r0 map[string]float64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]float64)
	}
	return r0, ret.Error(1)
}

// NewLeaderboard creates a new instance of Leaderboard. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewLeaderboard(t interface {
	mock.TestingT
	Cleanup(func())
}) *Leaderboard {
	m := &Leaderboard{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
