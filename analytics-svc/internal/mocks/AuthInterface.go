package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// AuthInterface is a mock type for the AuthInterface type
type AuthInterface struct {
	mock.Mock
}

// Login provides a mock function with given fields: ctx, username, password
func (_m *AuthInterface) Login(ctx context.Context, username string, password string) (string, error) {
	ret := _m.Called(ctx, username, password)
	return ret.String(0), ret.Error(1)
}

// EnsureDefaultAdmin provides a mock function with given fields: ctx, username, password
func (_m *AuthInterface) EnsureDefaultAdmin(ctx context.Context, username string, password string) error {
	ret := _m.Called(ctx, username, password)
	return ret.Error(0)
}

// NewAuthInterface creates a new instance of AuthInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthInterface {
	m := &AuthInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
