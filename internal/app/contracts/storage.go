package contracts

import (
	"context"
	"io"
)

type Storage interface {
	// PutObject stores the object and returns its public URL.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}
