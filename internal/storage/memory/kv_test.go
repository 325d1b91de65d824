package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/mystore/internal/storage/memory"
)

func TestRoundTrip(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put(ctx, "cart", []byte(`[]`)))

	value, ok, err := kv.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`[]`), value)

	require.NoError(t, kv.Delete(ctx, "cart"))
	_, ok, err = kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReturnsDefensiveCopies(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()

	original := []byte("value")
	require.NoError(t, kv.Put(ctx, "k", original))

	// Mutating the slice handed to Put must not affect the store.
	original[0] = 'X'
	got, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	// Nor must mutating a slice returned by Get.
	got[0] = 'Y'
	again, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}
