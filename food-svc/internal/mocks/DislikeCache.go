package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// DislikeCache is a mock type for the DislikeCache type
type DislikeCache struct {
	mock.Mock
}

// AddDislike provides a mock function with given fields: ctx, userID, day, foodID
func (_m *DislikeCache) AddDislike(ctx context.Context, userID string, day string, foodID int) error {
	ret := _m.Called(ctx, userID, day, foodID)
	return ret.Error(0)
}

// Dislikes provides a mock function with given fields: ctx, userID, day
func (_m *DislikeCache) Dislikes(ctx context.Context, userID string, day string) ([]int, error) {
	ret := _m.Called(ctx, userID, day)

	var r0 []int
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int)
	}
	return r0, ret.Error(1)
}

// NewDislikeCache creates a new instance of DislikeCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewDislikeCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *DislikeCache {
	m := &DislikeCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
