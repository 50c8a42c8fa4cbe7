package mocks

import (
	context "context"

	domain "ginraidee/analytics-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// CatalogReader is a mock type for the CatalogReader type
type CatalogReader struct {
	mock.Mock
}

// Catalog provides a mock function with given fields: ctx
func (_m *CatalogReader) Catalog(ctx context.Context) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx)

	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

// NewCatalogReader creates a new instance of CatalogReader. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCatalogReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogReader {
	m := &CatalogReader{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
