package model

import (
	"context"
	"io"
)

// Storage is the object storage collaborator used for profile images.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// ResolveAddress returns the retrievable URL for an uploaded key.
	ResolveAddress(key string) string
}
