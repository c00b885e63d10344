package vision_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trashit/internal/port"
	"trashit/internal/vision"
	"trashit/mocks"
)

var testInput = port.ClassifyInput{ImageBytes: []byte("img"), ContentType: "image/jpeg"}

func classifyOutput(provider string) *port.ClassifyOutput {
	return &port.ClassifyOutput{Text: validResponse, ModelUsed: provider + "-model", Provider: provider}
}

func TestFallbackClassifier_FirstSucceeds(t *testing.T) {
	c1 := new(mocks.MockVisionClassifier)
	c2 := new(mocks.MockVisionClassifier)
	c1.On("Classify", mock.Anything, testInput).Return(classifyOutput("gemini"), nil)

	fc := vision.NewFallbackClassifier([]port.VisionClassifier{c1, c2}, []string{"gemini", "claude"}, zap.NewNop())

	out, err := fc.Classify(context.Background(), testInput)

	require.NoError(t, err)
	assert.Equal(t, "gemini", out.Provider)
	c2.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestFallbackClassifier_FirstFails_SecondSucceeds(t *testing.T) {
	c1 := new(mocks.MockVisionClassifier)
	c2 := new(mocks.MockVisionClassifier)
	c1.On("Classify", mock.Anything, testInput).Return(nil, errors.New("boom"))
	c2.On("Classify", mock.Anything, testInput).Return(classifyOutput("claude"), nil)

	fc := vision.NewFallbackClassifier([]port.VisionClassifier{c1, c2}, []string{"gemini", "claude"}, zap.NewNop())

	out, err := fc.Classify(context.Background(), testInput)

	require.NoError(t, err)
	assert.Equal(t, "claude", out.Provider)
}

func TestFallbackClassifier_AllFail(t *testing.T) {
	c1 := new(mocks.MockVisionClassifier)
	c2 := new(mocks.MockVisionClassifier)
	lastErr := errors.New("second broke")
	c1.On("Classify", mock.Anything, testInput).Return(nil, vision.NewRateLimitError("gemini", errors.New("429"), 30))
	c2.On("Classify", mock.Anything, testInput).Return(nil, lastErr)

	fc := vision.NewFallbackClassifier([]port.VisionClassifier{c1, c2}, []string{"gemini", "claude"}, zap.NewNop())

	_, err := fc.Classify(context.Background(), testInput)

	require.Error(t, err)
	assert.True(t, errors.Is(err, lastErr))
	var rlErr *vision.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestFallbackClassifier_AllRateLimited(t *testing.T) {
	c1 := new(mocks.MockVisionClassifier)
	c2 := new(mocks.MockVisionClassifier)
	c1.On("Classify", mock.Anything, testInput).Return(nil, vision.NewRateLimitError("gemini", errors.New("429"), 30))
	c2.On("Classify", mock.Anything, testInput).Return(nil, vision.NewRateLimitError("claude", errors.New("429"), 10))

	fc := vision.NewFallbackClassifier([]port.VisionClassifier{c1, c2}, []string{"gemini", "claude"}, zap.NewNop())

	_, err := fc.Classify(context.Background(), testInput)

	var rlErr *vision.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
	assert.LessOrEqual(t, rlErr.RetryAfter, 10*time.Second)
}

func TestFallbackClassifier_OpenCircuitSkipsProvider(t *testing.T) {
	c1 := new(mocks.MockVisionClassifier)
	c2 := new(mocks.MockVisionClassifier)
	c1.On("Classify", mock.Anything, testInput).Return(nil, vision.NewRateLimitError("gemini", errors.New("429"), 60)).Once()
	c2.On("Classify", mock.Anything, testInput).Return(classifyOutput("claude"), nil)

	fc := vision.NewFallbackClassifier([]port.VisionClassifier{c1, c2}, []string{"gemini", "claude"}, zap.NewNop())

	_, err := fc.Classify(context.Background(), testInput)
	require.NoError(t, err)

	out, err := fc.Classify(context.Background(), testInput)
	require.NoError(t, err)
	assert.Equal(t, "claude", out.Provider)
	c1.AssertNumberOfCalls(t, "Classify", 1)
	c2.AssertNumberOfCalls(t, "Classify", 2)
}

func TestFallbackClassifier_StopsWhenContextDone(t *testing.T) {
	c1 := new(mocks.MockVisionClassifier)
	c2 := new(mocks.MockVisionClassifier)
	ctx, cancel := context.WithCancel(context.Background())
	c1.On("Classify", mock.Anything, testInput).Run(func(mock.Arguments) { cancel() }).Return(nil, errors.New("slow"))

	fc := vision.NewFallbackClassifier([]port.VisionClassifier{c1, c2}, []string{"gemini", "claude"}, zap.NewNop())

	_, err := fc.Classify(ctx, testInput)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	c2.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}
