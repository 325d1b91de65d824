package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcmexdev/mystore/internal/cart"
	"github.com/jcmexdev/mystore/internal/catalog"
	"github.com/jcmexdev/mystore/internal/order"
	"github.com/jcmexdev/mystore/internal/payment"
)

// VerifyStockStep checks every cart line against the catalog before any money
// moves. Lines whose product is no longer in the catalog are skipped; the
// frozen snapshot still carries enough data to fulfil them.
type VerifyStockStep struct {
	Catalog *catalog.Catalog
	Lines   []cart.Line
}

func (s *VerifyStockStep) Name() string { return "verify_stock" }

func (s *VerifyStockStep) Execute(ctx context.Context) error {
	for _, l := range s.Lines {
		stock, ok := s.Catalog.Stock(l.Product.ID)
		if !ok {
			continue
		}
		if l.Quantity > stock {
			return fmt.Errorf("insufficient stock for product %s: want %d, have %d",
				l.Product.ID, l.Quantity, stock)
		}
	}
	return nil
}

func (s *VerifyStockStep) Compensate(ctx context.Context) error { return nil }

// CreateOrderStep freezes the cart into a pending order. Its compensation
// does NOT cancel the order: a failed settlement leaves the order pending
// with a failed payment so the customer can retry.
type CreateOrderStep struct {
	Orders  *order.Service
	Request order.CreateRequest

	// Order is set after a successful execution.
	Order *order.Order
}

func (s *CreateOrderStep) Name() string { return "create_order" }

func (s *CreateOrderStep) Execute(ctx context.Context) error {
	o, err := s.Orders.Create(ctx, s.Request)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	s.Order = o
	return nil
}

func (s *CreateOrderStep) Compensate(ctx context.Context) error {
	if s.Order == nil {
		return nil
	}
	o, err := s.Orders.UpdatePaymentStatus(ctx, s.Order.ID, order.PaymentFailed, "")
	if err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	s.Order = o
	return nil
}

// SettlePaymentStep runs the payment simulator and records the outcome on the
// order. Cash settles immediately with deferred collection and no status
// change; everything else goes through the simulator.
type SettlePaymentStep struct {
	Payments *payment.Service
	Orders   *order.Service
	Create   *CreateOrderStep
	Method   string

	// Settlement is set after execution, including on decline.
	Settlement payment.Settlement
}

func (s *SettlePaymentStep) Name() string { return "settle_payment" }

// ErrDeclined is returned when the simulator declines the settlement. The
// decline itself is a business outcome; it becomes a step error so the
// orchestrator rolls back.
var ErrDeclined = errors.New("payment declined")

func (s *SettlePaymentStep) Execute(ctx context.Context) error {
	o := s.Create.Order
	req := payment.Request{
		OrderID:       o.ID,
		OrderNumber:   o.Number,
		Amount:        o.Total,
		CustomerEmail: o.CustomerEmail,
	}

	if s.Method == payment.MethodCash {
		s.Settlement = s.Payments.ProcessCash(req)
		return nil
	}

	settlement, err := s.Payments.Process(ctx, req, s.Method)
	if err != nil {
		return fmt.Errorf("process payment: %w", err)
	}
	s.Settlement = settlement
	if !settlement.Success {
		return fmt.Errorf("%w: %s", ErrDeclined, settlement.Message)
	}

	updated, err := s.Orders.UpdatePaymentStatus(ctx, o.ID, order.PaymentPaid, settlement.TransactionID)
	if err != nil {
		return fmt.Errorf("record settlement: %w", err)
	}
	s.Create.Order = updated
	return nil
}

func (s *SettlePaymentStep) Compensate(ctx context.Context) error { return nil }

// ClearCartStep empties the cart. It runs last so any earlier failure leaves
// the cart intact for a retry. Nothing to compensate: if this step ran, the
// checkout is already committed.
type ClearCartStep struct {
	Cart *cart.Service
}

func (s *ClearCartStep) Name() string { return "clear_cart" }

func (s *ClearCartStep) Execute(ctx context.Context) error {
	if err := s.Cart.Clear(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *ClearCartStep) Compensate(ctx context.Context) error { return nil }
