package order_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/mystore/internal/cart"
	"github.com/jcmexdev/mystore/internal/catalog"
	"github.com/jcmexdev/mystore/internal/order"
	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage/memory"
)

var headphones = catalog.Product{ID: "101", Name: "Wireless Headphones Pro", Price: 199.99}

var customer = order.CustomerInfo{
	FirstName: "Jane",
	LastName:  "Doe",
	Email:     "jane@example.com",
	Street:    "123 Main Street",
	City:      "New York",
	State:     "NY",
	ZipCode:   "10001",
	Country:   "USA",
}

type fixture struct {
	cart   *cart.Service
	orders *order.Service
	clock  *clock.Fake
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	kv := memory.New()
	fake := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	var seq int
	nextID := func() string {
		seq++
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", seq)
	}

	cartSvc := cart.New(kv, cart.WithClock(fake))
	orderSvc := order.New(kv, cartSvc,
		order.WithClock(fake),
		order.WithIDFunc(nextID),
	)
	return fixture{cart: cartSvc, orders: orderSvc, clock: fake}
}

func (f fixture) createOrder(t *testing.T, qty int) *order.Order {
	t.Helper()
	ctx := context.Background()
	_, err := f.cart.Add(ctx, headphones, qty)
	require.NoError(t, err)

	o, err := f.orders.Create(ctx, order.CreateRequest{Customer: customer, PaymentMethod: "creditCard"})
	require.NoError(t, err)
	return o
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Create(context.Background(), order.CreateRequest{Customer: customer})
	assert.ErrorIs(t, err, order.ErrEmptyCart)
}

func TestCreateComputesTotals(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, 3)

	assert.Equal(t, 599.97, o.Subtotal)
	assert.Equal(t, 0.0, o.Shipping, "order above threshold ships free")
	assert.Equal(t, 84.00, o.Tax)
	assert.Equal(t, 683.97, o.Total)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.PaymentPending, o.Payment.Status)
	assert.True(t, strings.HasPrefix(o.Number, "ORD-"))
	require.NotNil(t, o.EstimatedDelivery)
}

func TestCreateChargesShippingBelowThreshold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cheap := catalog.Product{ID: "105", Name: "French Press", Price: 34.50}
	_, err := f.cart.Add(ctx, cheap, 1)
	require.NoError(t, err)

	o, err := f.orders.Create(ctx, order.CreateRequest{Customer: customer, PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Equal(t, 9.99, o.Shipping)
	assert.Equal(t, 4.83, o.Tax)
	assert.Equal(t, 49.32, o.Total)
}

func TestOrderSnapshotIsImmune(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 2)

	// Mutating the cart after checkout must not touch the frozen order.
	_, err := f.cart.Add(ctx, headphones, 5)
	require.NoError(t, err)
	require.NoError(t, f.cart.Clear(ctx))

	reloaded, err := f.orders.Order(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 2, reloaded.Items[0].Quantity)
	assert.Equal(t, 199.99, reloaded.Items[0].UnitPrice)
	assert.Equal(t, o.Total, reloaded.Total)
}

func TestPaidSettlementAdvancesToProcessing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 1)

	updated, err := f.orders.UpdatePaymentStatus(ctx, o.ID, order.PaymentPaid, "TXN-1")
	require.NoError(t, err)

	assert.Equal(t, order.StatusProcessing, updated.Status)
	assert.Equal(t, order.PaymentPaid, updated.Payment.Status)
	assert.Equal(t, "TXN-1", updated.Payment.TransactionID)
	require.NotNil(t, updated.Payment.PaymentDate)
	assert.NotEmpty(t, updated.TrackingNumber)
	assert.Equal(t, "UPS", updated.Carrier)
}

func TestFailedSettlementLeavesOrderPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 1)

	updated, err := f.orders.UpdatePaymentStatus(ctx, o.ID, order.PaymentFailed, "")
	require.NoError(t, err)

	assert.Equal(t, order.StatusPending, updated.Status)
	assert.Equal(t, order.PaymentFailed, updated.Payment.Status)
}

func TestUpdateStatusStampsDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 1)

	shipped, err := f.orders.UpdateStatus(ctx, o.ID, order.StatusShipped)
	require.NoError(t, err)
	assert.NotEmpty(t, shipped.TrackingNumber)

	f.clock.Advance(48 * time.Hour)
	delivered, err := f.orders.UpdateStatus(ctx, o.ID, order.StatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveredDate)
	assert.Equal(t, f.clock.Current, *delivered.DeliveredDate)
}

func TestTerminalStatusIsFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 1)

	_, err := f.orders.Cancel(ctx, o.ID)
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, o.ID, order.StatusProcessing)
	assert.ErrorIs(t, err, order.ErrTerminalStatus)

	_, err = f.orders.UpdateStatus(ctx, o.ID, order.StatusDelivered)
	assert.ErrorIs(t, err, order.ErrTerminalStatus)
}

func TestUpdateStatusRejectsUnknownValues(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, 1)

	_, err := f.orders.UpdateStatus(context.Background(), o.ID, order.Status("returned"))
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestLookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 1)

	byID, err := f.orders.Order(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, byID.ID)

	byNumber, err := f.orders.ByNumber(ctx, o.Number)
	require.NoError(t, err)
	assert.Equal(t, o.ID, byNumber.ID)

	_, err = f.orders.Order(ctx, "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)

	_, err = f.orders.ByNumber(ctx, "ORD-XXXXXX")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.createOrder(t, 1)
	f.clock.Advance(time.Hour)
	second := f.createOrder(t, 2)
	f.clock.Advance(time.Hour)
	third := f.createOrder(t, 3)

	recent, err := f.orders.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, third.ID, recent[0].ID)
	assert.Equal(t, second.ID, recent[1].ID)

	all, err := f.orders.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[2].ID)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.orders.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalOrders)
	assert.Zero(t, empty.TotalSpent)
	assert.Zero(t, empty.AverageOrderValue)

	a := f.createOrder(t, 1)
	b := f.createOrder(t, 1)
	_, err = f.orders.UpdateStatus(ctx, b.ID, order.StatusDelivered)
	require.NoError(t, err)

	st, err := f.orders.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalOrders)
	assert.Equal(t, 1, st.PendingOrders)
	assert.Equal(t, 1, st.DeliveredOrders)
	assert.Equal(t, a.Total+b.Total, st.TotalSpent)
	assert.InDelta(t, st.TotalSpent/2, st.AverageOrderValue, 0.001)
}

func TestReorderRestoresCartLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 3)
	require.NoError(t, f.cart.Clear(ctx))

	res, err := f.orders.Reorder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Zero(t, res.Failed)

	q, err := f.cart.Quantity(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, 3, q)
}

func TestReorderUnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Reorder(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestTrackBuildsMilestones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 1)

	info, err := f.orders.Track(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Number, info.OrderNumber)
	require.Len(t, info.Events, 2, "pending orders show placed and processing only")

	_, err = f.orders.UpdateStatus(ctx, o.ID, order.StatusShipped)
	require.NoError(t, err)
	info, err = f.orders.Track(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, info.Events, 4)
	assert.Equal(t, "Shipped", info.Events[3].Status)

	_, err = f.orders.UpdateStatus(ctx, o.ID, order.StatusDelivered)
	require.NoError(t, err)
	info, err = f.orders.Track(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, info.Events, 5)
	assert.Equal(t, "Delivered", info.Events[4].Status)
}

func TestTrackDoesNotPersistSynthesizedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 1)

	info, err := f.orders.Track(ctx, o.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, info.TrackingNumber)

	reloaded, err := f.orders.Order(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.TrackingNumber)
}

func TestTrackIsStableAcrossReads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 1)

	first, err := f.orders.Track(ctx, o.ID)
	require.NoError(t, err)
	second, err := f.orders.Track(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, first.TrackingNumber, second.TrackingNumber,
		"two reads of the same unshipped order must agree on the tracking number")
}

func TestInvoiceContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 3)

	invoice, err := f.orders.Invoice(ctx, o.ID)
	require.NoError(t, err)

	assert.Contains(t, invoice, "Order Number: "+o.Number)
	assert.Contains(t, invoice, "Jane Doe")
	assert.Contains(t, invoice, "Wireless Headphones Pro x3")
	assert.Contains(t, invoice, "Price: $199.99 each")
	assert.Contains(t, invoice, "TOTAL: $683.97")
	assert.Contains(t, invoice, "Thank you for your purchase!")

	again, err := f.orders.Invoice(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice, again, "invoice rendering must be deterministic")
}

func TestOrdersSurviveReload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, 3)

	orders, err := f.orders.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, o.Total, orders[0].Total)
	assert.True(t, o.CreatedAt.Equal(orders[0].CreatedAt))
}
