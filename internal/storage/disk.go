// Package storage stores uploaded recipe images on the local filesystem or
// in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/pageza/recipe-api/backend/config"
)

// Disk is implemented by every image storage driver. Paths are slash
// separated and relative to the disk root, e.g. uploads/recipe/<uuid>.jpg.
type Disk interface {
	// Put writes the content of r to path, replacing any existing file.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Delete removes path. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the address clients use to fetch path.
	URL(ctx context.Context, path string) (string, error)
}

// New builds the disk selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Disk, error) {
	switch cfg.Driver {
	case "", config.StorageLocal:
		return NewLocalDisk(cfg.MediaRoot, cfg.MediaURL)
	case config.StorageS3:
		client, err := config.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Disk(client, cfg), nil
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", cfg.Driver)
	}
}
