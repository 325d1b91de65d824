package payment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/mystore/internal/payment"
	"github.com/jcmexdev/mystore/internal/storage/memory"
)

func alwaysApprove(string) bool { return true }
func alwaysDecline(string) bool { return false }

var req = payment.Request{
	OrderID:       "order-1",
	OrderNumber:   "ORD-000001",
	Amount:        683.97,
	CustomerEmail: "jane@example.com",
}

func TestProcessSuccessRecordsTransaction(t *testing.T) {
	svc := payment.New(memory.New(),
		payment.WithOutcome(alwaysApprove),
		payment.WithDelay(0),
	)
	ctx := context.Background()

	settlement, err := svc.Process(ctx, req, payment.MethodCreditCard)
	require.NoError(t, err)

	assert.True(t, settlement.Success)
	assert.Equal(t, "Credit card payment successful", settlement.Message)
	assert.True(t, len(settlement.TransactionID) > 4)
	assert.Equal(t, "TXN-", settlement.TransactionID[:4])
	assert.Equal(t, 683.97, settlement.Amount)

	txn, found, err := svc.Transaction(ctx, settlement.TransactionID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "order-1", txn.OrderID)
	assert.Equal(t, "completed", txn.Status)
}

func TestProcessDeclineIsNotAnError(t *testing.T) {
	svc := payment.New(memory.New(),
		payment.WithOutcome(alwaysDecline),
		payment.WithDelay(0),
	)
	ctx := context.Background()

	settlement, err := svc.Process(ctx, req, payment.MethodCreditCard)
	require.NoError(t, err, "a decline is a business outcome, not a failure")

	assert.False(t, settlement.Success)
	assert.Equal(t, "Credit card payment declined", settlement.Message)
	assert.Empty(t, settlement.TransactionID)

	txns, err := svc.Transactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns, "declined attempts are not logged")
}

func TestDeclineMessagesPerMethod(t *testing.T) {
	svc := payment.New(memory.New(),
		payment.WithOutcome(alwaysDecline),
		payment.WithDelay(0),
	)
	ctx := context.Background()

	cases := map[string]string{
		payment.MethodVodafoneCash: "Vodafone Cash payment failed",
		payment.MethodInstapay:     "Instapay payment failed",
		"unknown":                  "Payment failed",
	}
	for method, want := range cases {
		settlement, err := svc.Process(ctx, req, method)
		require.NoError(t, err)
		assert.Equal(t, want, settlement.Message)
	}
}

func TestProcessCashAlwaysSucceeds(t *testing.T) {
	svc := payment.New(memory.New(), payment.WithOutcome(alwaysDecline))

	settlement := svc.ProcessCash(req)
	assert.True(t, settlement.Success)
	assert.Equal(t, payment.MethodCash, settlement.Method)
	assert.Empty(t, settlement.TransactionID, "cash settles on delivery")
}

func TestProcessHonoursContextCancellation(t *testing.T) {
	svc := payment.New(memory.New(), payment.WithOutcome(alwaysApprove))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Process(ctx, req, payment.MethodCreditCard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusFallsBackToPending(t *testing.T) {
	svc := payment.New(memory.New(), payment.WithDelay(0))

	txn, err := svc.Status(context.Background(), "never-paid")
	require.NoError(t, err)
	assert.Equal(t, "pending", txn.Status)
	assert.Equal(t, "never-paid", txn.OrderID)
}

func TestMethodsSeedAndManage(t *testing.T) {
	svc := payment.New(memory.New(), payment.WithDelay(0))
	ctx := context.Background()

	methods, err := svc.Methods(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 4)
	assert.True(t, methods[0].IsDefault)

	added, err := svc.AddMethod(ctx, payment.Method{Type: "card", Provider: "Mastercard", LastFour: "9876"})
	require.NoError(t, err)
	assert.True(t, len(added.ID) > 3)
	assert.False(t, added.IsDefault)

	require.NoError(t, svc.SetDefault(ctx, added.ID))
	methods, err = svc.Methods(ctx)
	require.NoError(t, err)
	for _, m := range methods {
		assert.Equal(t, m.ID == added.ID, m.IsDefault)
	}

	require.NoError(t, svc.DeleteMethod(ctx, added.ID))
	methods, err = svc.Methods(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 4)
	assert.True(t, methods[0].IsDefault, "default is promoted after deleting the default")

	assert.ErrorIs(t, svc.DeleteMethod(ctx, "missing"), payment.ErrMethodNotFound)
	assert.ErrorIs(t, svc.SetDefault(ctx, "missing"), payment.ErrMethodNotFound)
}
