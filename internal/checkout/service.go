// Package checkout coordinates the multi-step purchase flow: stock
// verification, order creation, payment settlement and cart cleanup, with
// compensation on failure and a durable audit trail.
package checkout

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/jcmexdev/mystore/internal/cart"
	"github.com/jcmexdev/mystore/internal/catalog"
	"github.com/jcmexdev/mystore/internal/checkout/auditlog"
	"github.com/jcmexdev/mystore/internal/order"
	"github.com/jcmexdev/mystore/internal/payment"
)

type Service struct {
	catalog  *catalog.Catalog
	cart     *cart.Service
	orders   *order.Service
	payments *payment.Service
	log      auditlog.Repository
	newID    func() string
}

type Option func(*Service)

func WithAuditLog(log auditlog.Repository) Option {
	return func(s *Service) { s.log = log }
}

func WithIDFunc(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func New(cat *catalog.Catalog, cartSvc *cart.Service, orders *order.Service, payments *payment.Service, opts ...Option) *Service {
	s := &Service{
		catalog:  cat,
		cart:     cartSvc,
		orders:   orders,
		payments: payments,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request is the input to a checkout run.
type Request struct {
	Customer      order.CustomerInfo
	PaymentMethod string
	Notes         string
	Discount      float64
}

// Result is what a finished (or failed) run produced. Order is non-nil as
// soon as the create step ran, even when a later step failed.
type Result struct {
	CheckoutID string
	Order      *order.Order
	Settlement payment.Settlement
}

// Checkout runs the full purchase flow. On a declined settlement the order
// survives as pending with a failed payment and the cart is left untouched;
// the returned error wraps ErrDeclined.
func (s *Service) Checkout(ctx context.Context, req Request) (Result, error) {
	lines, err := s.cart.Items(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(lines) == 0 {
		return Result{}, order.ErrEmptyCart
	}

	createStep := &CreateOrderStep{
		Orders: s.orders,
		Request: order.CreateRequest{
			Customer:      req.Customer,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
			Discount:      req.Discount,
		},
	}
	settleStep := &SettlePaymentStep{
		Payments: s.payments,
		Orders:   s.orders,
		Create:   createStep,
		Method:   req.PaymentMethod,
	}

	steps := []Step{
		&VerifyStockStep{Catalog: s.catalog, Lines: lines},
		createStep,
		settleStep,
		&ClearCartStep{Cart: s.cart},
	}

	checkoutID := s.newID()
	orch := NewOrchestrator(checkoutID, steps, s.log)
	runErr := orch.Start(ctx, payloadFor(req, lines))

	res := Result{
		CheckoutID: checkoutID,
		Order:      createStep.Order,
		Settlement: settleStep.Settlement,
	}
	return res, runErr
}

// Declined reports whether a checkout error was a payment decline rather
// than an infrastructure failure.
func Declined(err error) bool {
	return errors.Is(err, ErrDeclined)
}

// payloadFor summarises the run input for the STARTED audit entry.
func payloadFor(req Request, lines []cart.Line) string {
	type lineSummary struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	summary := struct {
		CustomerEmail string        `json:"customerEmail"`
		PaymentMethod string        `json:"paymentMethod"`
		Discount      float64       `json:"discount,omitempty"`
		Items         []lineSummary `json:"items"`
	}{
		CustomerEmail: req.Customer.Email,
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
	}
	for _, l := range lines {
		summary.Items = append(summary.Items, lineSummary{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	b, err := json.Marshal(summary)
	if err != nil {
		return ""
	}
	return string(b)
}
