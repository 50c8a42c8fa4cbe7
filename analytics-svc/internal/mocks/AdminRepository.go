package mocks

import (
	context "context"

	domain "ginraidee/analytics-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// AdminRepository is a mock type for the AdminRepository type
type AdminRepository struct {
	mock.Mock
}

// AdminByUsername provides a mock function with given fields: ctx, username
func (_m *AdminRepository) AdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	ret := _m.Called(ctx, username)

	var r0 *domain.Admin
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Admin)
	}
	return r0, ret.Error(1)
}

// CountAdmins provides a mock function with given fields: ctx
func (_m *AdminRepository) CountAdmins(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)
	return ret.Int(0), ret.Error(1)
}

// CreateAdmin provides a mock function with given fields: ctx, username, passwordHash
func (_m *AdminRepository) CreateAdmin(ctx context.Context, username string, passwordHash string) error {
	ret := _m.Called(ctx, username, passwordHash)
	return ret.Error(0)
}

// NewAdminRepository creates a new instance of AdminRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAdminRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *AdminRepository {
	m := &AdminRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
