package mocks

import (
	context "context"

	domain "ginraidee/agg-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// StoreInterface is a mock type for the StoreInterface type
type StoreInterface struct {
	mock.Mock
}

// RecordFeedback provides a mock function with given fields: ctx, event
func (_m *StoreInterface) RecordFeedback(ctx context.Context, event domain.Event) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// RecordSelection provides a mock function with given fields: ctx, event
func (_m *StoreInterface) RecordSelection(ctx context.Context, event domain.Event) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// NewStoreInterface creates a new instance of StoreInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
