package vision

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"trashit/internal/port"
)

// RetryClassifier retries transient failures of a single provider with
// exponential backoff. Rate limits and other errors are returned immediately.
type RetryClassifier struct {
	inner      port.VisionClassifier
	name       string
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// NewRetryClassifier wraps inner. maxRetries counts attempts after the first one.
func NewRetryClassifier(inner port.VisionClassifier, name string, maxRetries int, backoff time.Duration, logger *zap.Logger) *RetryClassifier {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryClassifier{
		inner:      inner,
		name:       name,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
	}
}

func (r *RetryClassifier) Classify(ctx context.Context, input port.ClassifyInput) (*port.ClassifyOutput, error) {
	for attempt := 0; ; attempt++ {
		out, err := r.inner.Classify(ctx, input)
		if err == nil {
			return out, nil
		}

		var tErr *TransientError
		if !errors.As(err, &tErr) || attempt >= r.maxRetries {
			return nil, err
		}

		delay := r.backoff << attempt
		r.logger.Warn("retrying vision provider",
			zap.String("provider", r.name),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
}
