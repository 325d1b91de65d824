package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/mystore/internal/session"
	"github.com/jcmexdev/mystore/internal/storage/memory"
)

func TestUserRoundTrip(t *testing.T) {
	store := session.New(memory.New())
	ctx := context.Background()

	_, ok, err := store.User(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	u := session.User{ID: 7, Email: "jane@example.com", FirstName: "Jane"}
	require.NoError(t, store.SetUser(ctx, u))

	got, ok, err := store.User(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestClearUserRemovesToken(t *testing.T) {
	store := session.New(memory.New())
	ctx := context.Background()

	require.NoError(t, store.SetUser(ctx, session.User{ID: 1, Email: "jane@example.com"}))
	require.NoError(t, store.SetToken(ctx, "tok-123"))

	require.NoError(t, store.ClearUser(ctx))

	_, ok, err := store.User(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "sign-out must drop the auth token too")
}

func TestReturnURL(t *testing.T) {
	store := session.New(memory.New())
	ctx := context.Background()

	url, err := store.ReturnURL(ctx)
	require.NoError(t, err)
	assert.Empty(t, url)

	require.NoError(t, store.SetReturnURL(ctx, "/checkout"))
	url, err = store.ReturnURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/checkout", url)
}
