package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trashit/internal/domain"
	"trashit/internal/service"
)

// MockValuationService is a mock implementation of service.ValuationService.
type MockValuationService struct {
	mock.Mock
}

func (m *MockValuationService) Analyze(ctx context.Context, input service.AnalyzeInput) (*domain.ValuationResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValuationResponse), args.Error(1)
}

func (m *MockValuationService) Wait() {
	m.Called()
}
