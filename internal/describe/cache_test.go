package describe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmined/foldersense/internal/blob"
)

// memStore is an in-memory blob.Store recording access for assertions.
type memStore struct {
	objects map[string][]byte
	gets    []string
	puts    []string
	failGet bool
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.gets = append(m.gets, key)
	if m.failGet {
		return nil, errors.New("store unavailable")
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, blob.ErrKeyNotFound
	}
	return data, nil
}

func (m *memStore) Put(_ context.Context, key string, data []byte) error {
	m.puts = append(m.puts, key)
	m.objects[key] = data
	return nil
}

func TestContentHash_Deterministic(t *testing.T) {
	a := ContentHash([]byte("hello world"))
	b := ContentHash([]byte("hello world"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", a)
}

func TestContentHash_OneByteChange(t *testing.T) {
	a := ContentHash([]byte("hello world"))
	b := ContentHash([]byte("hello worlc"))
	assert.NotEqual(t, a, b)
}

func TestSummaryCache_RoundTrip(t *testing.T) {
	cache := NewSummaryCache(newMemStore(), "summary-cache/")
	ctx := context.Background()
	hash := ContentHash([]byte("some document"))

	require.NoError(t, cache.Put(ctx, hash, "a summary"))

	summary, ok, err := cache.Get(ctx, hash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a summary", summary)
}

func TestSummaryCache_MissIsNotError(t *testing.T) {
	cache := NewSummaryCache(newMemStore(), "summary-cache/")

	summary, ok, err := cache.Get(context.Background(), ContentHash([]byte("never stored")))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, summary)
}

func TestSummaryCache_KeysCarryPrefix(t *testing.T) {
	store := newMemStore()
	cache := NewSummaryCache(store, "summary-cache/")
	hash := ContentHash([]byte("doc"))

	require.NoError(t, cache.Put(context.Background(), hash, "s"))
	assert.Contains(t, store.objects, "summary-cache/"+hash)
}

func TestSummaryCache_StoreFailureSurfaces(t *testing.T) {
	store := newMemStore()
	store.failGet = true
	cache := NewSummaryCache(store, "summary-cache/")

	_, _, err := cache.Get(context.Background(), "deadbeef")
	require.Error(t, err)
	assert.NotErrorIs(t, err, blob.ErrKeyNotFound)
}
