package describe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openmined/foldersense/internal/blob"
)

// SummaryCache is a content-addressed summary store. Entries are keyed by
// the SHA-256 of the file bytes, so identical content under different names
// shares one entry and renames never invalidate it.
type SummaryCache struct {
	store  blob.Store
	prefix string
}

// NewSummaryCache creates a cache storing entries under the given key prefix.
func NewSummaryCache(store blob.Store, prefix string) *SummaryCache {
	return &SummaryCache{
		store:  store,
		prefix: prefix,
	}
}

// ContentHash returns the lowercase hex SHA-256 digest of content.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get looks up a cached summary by content hash. A miss is not an error.
func (c *SummaryCache) Get(ctx context.Context, hash string) (summary string, ok bool, err error) {
	data, err := c.store.Get(ctx, c.prefix+hash)
	if err != nil {
		if errors.Is(err, blob.ErrKeyNotFound) {
			slog.Debug("summary cache miss", "hash", hash)
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	slog.Debug("summary cache hit", "hash", hash)
	return string(data), true, nil
}

// Put stores a summary under the given content hash.
func (c *SummaryCache) Put(ctx context.Context, hash, summary string) error {
	if err := c.store.Put(ctx, c.prefix+hash, []byte(summary)); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}
