package storage

import (
	"context"
	"errors"
	"io"
)

// Metadata keys attached to stored objects.
const (
	MetaCreatedAt = "created-at" // milliseconds since epoch, decimal string
	MetaName      = "name"       // original filename
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("storage: object not found")

// Object is a stored blob opened for reading. Callers own Body and must
// close it.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Metadata    map[string]string
}

// ObjectStore is the key/value blob interface the transfer protocol relies
// on. Per-key atomicity of a single Put, Get or Delete is the only
// consistency primitive assumed; there are no transactions and no retries.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentLength int64, contentType string, metadata map[string]string) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}
