package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openmined/foldersense/internal/blob"
)

// TokenStore persists the drive delta cursor as a single UTF-8 object.
// The cursor is the correctness boundary of the pipeline: it must only be
// advanced after every description upload for the run has succeeded.
type TokenStore struct {
	store blob.Store
	key   string
}

// NewTokenStore creates a TokenStore reading/writing the given key.
func NewTokenStore(store blob.Store, key string) *TokenStore {
	return &TokenStore{
		store: store,
		key:   key,
	}
}

// Get reads the persisted delta token. found is false on first run, when no
// token has been saved yet; that is not an error.
func (t *TokenStore) Get(ctx context.Context) (token string, found bool, err error) {
	data, err := t.store.Get(ctx, t.key)
	if err != nil {
		if errors.Is(err, blob.ErrKeyNotFound) {
			slog.Info("no delta token found, treating as first run")
			return "", false, nil
		}
		return "", false, fmt.Errorf("read delta token: %w", err)
	}
	return string(data), true, nil
}

// Save persists the delta token, creating the backing container if needed.
func (t *TokenStore) Save(ctx context.Context, token string) error {
	if err := t.store.Put(ctx, t.key, []byte(token)); err != nil {
		return fmt.Errorf("save delta token: %w", err)
	}
	slog.Info("saved delta token")
	return nil
}
