package model

import (
	"context"
	"io"
)

// ObjectStorage holds binary blobs such as product images.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
