package blob

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Store.Get when no object exists at the key.
// Callers treat it as a signal, not a failure.
var ErrKeyNotFound = errors.New("blob: key not found")

// Store is a minimal byte-oriented key/value store. Both the delta cursor
// and the summary cache live behind this interface.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Config holds the settings for an S3-compatible object store.
type Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}
