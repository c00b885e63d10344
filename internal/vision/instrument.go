package vision

import (
	"context"
	"errors"
	"time"

	"trashit/internal/metrics"
	"trashit/internal/port"
)

// instrumented records call duration and outcome for one provider.
type instrumented struct {
	inner    port.VisionClassifier
	provider string
}

func (i *instrumented) Classify(ctx context.Context, input port.ClassifyInput) (*port.ClassifyOutput, error) {
	start := time.Now()
	out, err := i.inner.Classify(ctx, input)
	metrics.VisionCallDuration.WithLabelValues(i.provider, callOutcome(err)).Observe(time.Since(start).Seconds())
	return out, err
}

func callOutcome(err error) string {
	var rlErr *RateLimitError
	var tErr *TransientError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &rlErr):
		return "rate_limited"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &tErr):
		return "transient"
	default:
		return "error"
	}
}
