package port

import (
	"context"

	"trashit/internal/domain"
)

// ClassificationCache stores validated vision results keyed by image digest.
// Get returns nil, nil on a miss.
type ClassificationCache interface {
	Get(ctx context.Context, key string) (*domain.VisionResult, error)
	Set(ctx context.Context, key string, result *domain.VisionResult) error
	Ping(ctx context.Context) error
}
