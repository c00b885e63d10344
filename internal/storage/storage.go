// Package storage selects the object storage used to archive analyzed images.
package storage

import (
	"context"
	"fmt"

	"trashit/internal/config"
	"trashit/internal/port"
	"trashit/internal/storage/s3"
)

// New returns the archive backend named by cfg.Provider: "s3" or "noop".
func New(cfg *config.ArchiveConfig) (port.ObjectStorage, error) {
	switch cfg.Provider {
	case "s3":
		return s3.NewS3Client(cfg)
	case "", "noop":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown archive provider: %s", cfg.Provider)
	}
}

// Noop discards uploads.
type Noop struct{}

func (Noop) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	return &port.UploadOutput{Location: "noop://" + input.Bucket + "/" + input.Key}, nil
}
