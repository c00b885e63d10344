package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trashit/internal/domain"
)

// MockClassificationCache is a mock implementation of port.ClassificationCache.
type MockClassificationCache struct {
	mock.Mock
}

func (m *MockClassificationCache) Get(ctx context.Context, key string) (*domain.VisionResult, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisionResult), args.Error(1)
}

func (m *MockClassificationCache) Set(ctx context.Context, key string, result *domain.VisionResult) error {
	args := m.Called(ctx, key, result)
	return args.Error(0)
}

func (m *MockClassificationCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
