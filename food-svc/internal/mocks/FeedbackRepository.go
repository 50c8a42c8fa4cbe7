package mocks

import (
	context "context"
	time "time"

	domain "ginraidee/food-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// FeedbackRepository is a mock type for the FeedbackRepository type
type FeedbackRepository struct {
	mock.Mock
}

// InsertFeedback provides a mock function with given fields: ctx, rec
func (_m *FeedbackRepository) InsertFeedback(ctx context.Context, rec *domain.FeedbackRecord) error {
	ret := _m.Called(ctx, rec)
	return ret.Error(0)
}

// InsertSelection provides a mock function with given fields: ctx, rec
func (_m *FeedbackRepository) InsertSelection(ctx context.Context, rec *domain.SelectionRecord) error {
	ret := _m.Called(ctx, rec)
	return ret.Error(0)
}

// DislikedSince provides a mock function with given fields: ctx, userID, since
func (_m *FeedbackRepository) DislikedSince(ctx context.Context, userID string, since time.Time) ([]int, error) {
	ret := _m.Called(ctx, userID, since)

	var r0 []int
	if rf, ok := ret.Get(0).(func(context.Context, string, time.Time) []int); ok {
		r0 = rf(ctx, userID, since)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int)
	}
	return r0, ret.Error(1)
}

// FeedbackCountsSince provides a mock function with given fields: ctx, foodID, since
func (_m *FeedbackRepository) FeedbackCountsSince(ctx context.Context, foodID int, since time.Time) (int, int, error) {
	ret := _m.Called(ctx, foodID, since)
	return ret.Int(0), ret.Int(1), ret.Error(2)
}

// NewFeedbackRepository creates a new instance of FeedbackRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewFeedbackRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *FeedbackRepository {
	m := &FeedbackRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
