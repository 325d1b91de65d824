package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/mystore/internal/storage/sqlite"
)

func openTestKV(t *testing.T) *sqlite.KV {
	t.Helper()
	kv, err := sqlite.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestRoundTrip(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put(ctx, "cart", []byte(`[{"quantity":1}]`)))

	value, ok, err := kv.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"quantity":1}]`, string(value))
}

func TestPutOverwrites(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "wishlist_items", []byte(`[]`)))
	require.NoError(t, kv.Put(ctx, "wishlist_items", []byte(`[{"id":"W1"}]`)))

	value, ok, err := kv.Get(ctx, "wishlist_items")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"W1"}]`, string(value))
}

func TestDelete(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "auth_token", []byte("tok")))
	require.NoError(t, kv.Delete(ctx, "auth_token"))

	_, ok, err := kv.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	require.NoError(t, kv.Delete(ctx, "auth_token"))
}
