package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// SelectionRecorder is a mock type for the SelectionRecorder type
type SelectionRecorder struct {
	mock.Mock
}

// Select provides a mock function with given fields: ctx, userID, foodID
func (_m *SelectionRecorder) Select(ctx context.Context, userID string, foodID int) error {
	ret := _m.Called(ctx, userID, foodID)
	return ret.Error(0)
}

// NewSelectionRecorder creates a new instance of SelectionRecorder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSelectionRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *SelectionRecorder {
	m := &SelectionRecorder{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
