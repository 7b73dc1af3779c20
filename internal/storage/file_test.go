package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.json")
	store, err := NewFileStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed creating file store with error: %s", err)
	}

	_, err = store.Get(KeySessionId)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	err = store.Set(KeySessionId, "session-1")
	assert.NoError(t, err)

	value, err := store.Get(KeySessionId)
	assert.NoError(t, err)
	assert.Equal(t, "session-1", value)

	err = store.Remove(KeySessionId)
	assert.NoError(t, err)
	_, err = store.Get(KeySessionId)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStoreDurableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.json")
	store, err := NewFileStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed creating file store with error: %s", err)
	}
	if err := store.Set(KeyWishlist, `[{"id":"p1"}]`); err != nil {
		t.Fatalf("failed setting wishlist with error: %s", err)
	}

	reopened, err := NewFileStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed reopening file store with error: %s", err)
	}
	value, err := reopened.Get(KeyWishlist)
	assert.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, value)
}

func TestFileStoreRemoveMissingKeyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.json")
	store, err := NewFileStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed creating file store with error: %s", err)
	}
	assert.NoError(t, store.Remove("never-set"))
}

func TestAddingAddressMailbox(t *testing.T) {
	store := NewMemoryStore()

	pending, _, err := AddingAddress(store)
	assert.NoError(t, err)
	assert.False(t, pending)

	markedAt := time.UnixMilli(1700000000000)
	err = MarkAddingAddress(store, markedAt)
	assert.NoError(t, err)

	pending, at, err := AddingAddress(store)
	assert.NoError(t, err)
	assert.True(t, pending)
	assert.Equal(t, markedAt, at)

	err = ClearAddingAddress(store)
	assert.NoError(t, err)
	pending, _, err = AddingAddress(store)
	assert.NoError(t, err)
	assert.False(t, pending)
}
