package mocks

import (
	context "context"

	domain "ginraidee/spin-cli/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// FeedbackSender is a mock type for the FeedbackSender type
type FeedbackSender struct {
	mock.Mock
}

// Feedback provides a mock function with given fields: ctx, userID, foodID, action
func (_m *FeedbackSender) Feedback(ctx context.Context, userID string, foodID int, action domain.Action) error {
	ret := _m.Called(ctx, userID, foodID, action)
	return ret.Error(0)
}

// NewFeedbackSender creates a new instance of FeedbackSender. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewFeedbackSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *FeedbackSender {
	m := &FeedbackSender{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
