package mocks

import (
	context "context"

	domain "ginraidee/spin-cli/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// Picker is a mock type for the Picker type
type Picker struct {
	mock.Mock
}

// Random provides a mock function with given fields: ctx, filter, exclude, userID
func (_m *Picker) Random(ctx context.Context, filter domain.Filter, exclude []int, userID string) (domain.MenuItem, error) {
	ret := _m.Called(ctx, filter, exclude, userID)

	var r0 domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.MenuItem)
	}
	return r0, ret.Error(1)
}

// NewPicker creates a new instance of Picker. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPicker(t interface {
	mock.TestingT
	Cleanup(func())
}) *Picker {
	m := &Picker{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
