package checkout_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/mystore/internal/cart"
	"github.com/jcmexdev/mystore/internal/catalog"
	"github.com/jcmexdev/mystore/internal/checkout"
	"github.com/jcmexdev/mystore/internal/checkout/auditlog"
	"github.com/jcmexdev/mystore/internal/order"
	"github.com/jcmexdev/mystore/internal/payment"
	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage/memory"
)

// memLog is an in-memory auditlog.Repository capturing entries in order.
type memLog struct {
	mu      sync.Mutex
	entries []auditlog.Entry
}

func (m *memLog) Save(_ context.Context, e *auditlog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memLog) statuses() []auditlog.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]auditlog.Status, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Status
	}
	return out
}

type fixture struct {
	cart     *cart.Service
	orders   *order.Service
	checkout *checkout.Service
	log      *memLog
}

func newFixture(t *testing.T, outcome payment.OutcomeFunc) fixture {
	t.Helper()
	kv := memory.New()
	fake := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	var seq int
	nextID := func() string {
		seq++
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", seq)
	}

	cat := catalog.Default()
	cartSvc := cart.New(kv, cart.WithClock(fake))
	orderSvc := order.New(kv, cartSvc, order.WithClock(fake), order.WithIDFunc(nextID))
	paymentSvc := payment.New(kv,
		payment.WithClock(fake),
		payment.WithIDFunc(nextID),
		payment.WithOutcome(outcome),
		payment.WithDelay(0),
	)
	log := &memLog{}
	checkoutSvc := checkout.New(cat, cartSvc, orderSvc, paymentSvc,
		checkout.WithAuditLog(log),
		checkout.WithIDFunc(nextID),
	)
	return fixture{cart: cartSvc, orders: orderSvc, checkout: checkoutSvc, log: log}
}

var customer = order.CustomerInfo{
	FirstName: "Jane",
	LastName:  "Doe",
	Email:     "jane@example.com",
	Country:   "USA",
}

func TestCheckoutSuccess(t *testing.T) {
	f := newFixture(t, func(string) bool { return true })
	ctx := context.Background()

	product, _ := catalog.Default().Product("101")
	_, err := f.cart.Add(ctx, product, 2)
	require.NoError(t, err)

	res, err := f.checkout.Checkout(ctx, checkout.Request{
		Customer:      customer,
		PaymentMethod: payment.MethodCreditCard,
	})
	require.NoError(t, err)

	require.NotNil(t, res.Order)
	assert.Equal(t, order.StatusProcessing, res.Order.Status)
	assert.Equal(t, order.PaymentPaid, res.Order.Payment.Status)
	assert.True(t, res.Settlement.Success)
	assert.NotEmpty(t, res.Settlement.TransactionID)

	count, err := f.cart.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "successful checkout empties the cart")

	assert.Equal(t, []auditlog.Status{
		auditlog.StatusStarted,
		auditlog.StatusStepDone,
		auditlog.StatusStepDone,
		auditlog.StatusStepDone,
		auditlog.StatusStepDone,
		auditlog.StatusCompleted,
	}, f.log.statuses())
}

func TestCheckoutDeclineKeepsCartAndOrder(t *testing.T) {
	f := newFixture(t, func(string) bool { return false })
	ctx := context.Background()

	product, _ := catalog.Default().Product("101")
	_, err := f.cart.Add(ctx, product, 2)
	require.NoError(t, err)

	res, err := f.checkout.Checkout(ctx, checkout.Request{
		Customer:      customer,
		PaymentMethod: payment.MethodCreditCard,
	})
	require.Error(t, err)
	assert.True(t, checkout.Declined(err))

	require.NotNil(t, res.Order, "the pending order survives a decline")
	reloaded, err := f.orders.Order(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, reloaded.Status)
	assert.Equal(t, order.PaymentFailed, reloaded.Payment.Status)

	count, err := f.cart.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "a declined checkout leaves the cart intact")

	statuses := f.log.statuses()
	require.NotEmpty(t, statuses)
	assert.Equal(t, auditlog.StatusFailed, statuses[len(statuses)-1])
	assert.Contains(t, statuses, auditlog.StatusCompensating)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, func(string) bool { return true })

	_, err := f.checkout.Checkout(context.Background(), checkout.Request{
		Customer:      customer,
		PaymentMethod: payment.MethodCreditCard,
	})
	assert.ErrorIs(t, err, order.ErrEmptyCart)
	assert.Empty(t, f.log.statuses(), "nothing to audit when the run never starts")
}

func TestCheckoutCashDefersSettlement(t *testing.T) {
	// Cash must complete even when the simulator would decline everything.
	f := newFixture(t, func(string) bool { return false })
	ctx := context.Background()

	product, _ := catalog.Default().Product("104")
	_, err := f.cart.Add(ctx, product, 1)
	require.NoError(t, err)

	res, err := f.checkout.Checkout(ctx, checkout.Request{
		Customer:      customer,
		PaymentMethod: payment.MethodCash,
	})
	require.NoError(t, err)

	assert.True(t, res.Settlement.Success)
	assert.Equal(t, order.StatusPending, res.Order.Status)
	assert.Equal(t, order.PaymentPending, res.Order.Payment.Status, "cash is collected on delivery")

	count, err := f.cart.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newFixture(t, func(string) bool { return true })
	ctx := context.Background()

	// Product 102 has 8 in stock.
	product, _ := catalog.Default().Product("102")
	_, err := f.cart.Add(ctx, product, 9)
	require.NoError(t, err)

	res, err := f.checkout.Checkout(ctx, checkout.Request{
		Customer:      customer,
		PaymentMethod: payment.MethodCreditCard,
	})
	require.Error(t, err)
	assert.False(t, checkout.Declined(err))
	assert.Nil(t, res.Order, "no order is created when the stock check fails")

	count, err := f.cart.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, count)

	orders, err := f.orders.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
