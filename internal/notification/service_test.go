package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/mystore/internal/notification"
	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage/memory"
)

func newService() (*notification.Service, *clock.Fake) {
	fake := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	return notification.New(memory.New(), notification.WithClock(fake)), fake
}

func TestListSeedsSamples(t *testing.T) {
	svc, _ := newService()

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.True(t, items[0].Read, "the welcome notification starts read")
}

func TestAddPrepends(t *testing.T) {
	svc, fake := newService()
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	n, err := svc.Add(ctx, "Order Confirmed", "Your order is on its way.", "success")
	require.NoError(t, err)
	assert.False(t, n.Read)
	assert.Equal(t, fake.Current, n.Date)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, n.ID, items[0].ID)
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkRead(ctx, "2"))
	count, err = svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkAllRead(ctx))
	count, err = svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.MarkRead(ctx, "missing"), notification.ErrNotFound)
}

func TestDeleteAndClear(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "2"))
	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	assert.ErrorIs(t, svc.Delete(ctx, "2"), notification.ErrNotFound)

	require.NoError(t, svc.ClearAll(ctx))
	// Clearing removes the stored collection; the next read reseeds.
	items, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
