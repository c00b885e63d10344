package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trashit/internal/port"
)

// MockVisionClassifier is a mock implementation of port.VisionClassifier.
type MockVisionClassifier struct {
	mock.Mock
}

func (m *MockVisionClassifier) Classify(ctx context.Context, input port.ClassifyInput) (*port.ClassifyOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ClassifyOutput), args.Error(1)
}
