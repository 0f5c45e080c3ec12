package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolio-gif/internal/store"
)

// MockStore is a mock implementation of store.Store
type MockStore struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockStore) Get(ctx context.Context, collection string) (map[string]store.Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]store.Document), args.Error(1)
}

// Push mocks the Push method
func (m *MockStore) Push(ctx context.Context, collection string, doc store.Document) (string, error) {
	args := m.Called(ctx, collection, doc)
	return args.String(0), args.Error(1)
}

// Update mocks the Update method
func (m *MockStore) Update(ctx context.Context, collection, key string, fields store.Document) error {
	args := m.Called(ctx, collection, key, fields)
	return args.Error(0)
}

// Delete mocks the Delete method
func (m *MockStore) Delete(ctx context.Context, collection, key string) error {
	args := m.Called(ctx, collection, key)
	return args.Error(0)
}

// Ping mocks the Ping method
func (m *MockStore) Ping(ctx context.Context, collection string) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}
