// Package payment implements the payment simulator: settlement outcomes are
// produced by an injectable provider (pseudo-random by default) after a fixed
// delay, and successful settlements are appended to a persisted transaction
// log. No real gateway is involved.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage"
)

// Known method identifiers. Anything else settles with the default odds.
const (
	MethodCreditCard   = "creditCard"
	MethodVodafoneCash = "vodafoneCash"
	MethodInstapay     = "instapay"
	MethodCash         = "cash"
)

// Request carries the order context a settlement is attempted for.
type Request struct {
	OrderID       string
	OrderNumber   string
	Amount        float64
	CustomerEmail string
}

// Settlement is the outcome of a payment attempt. Declines are an expected
// outcome, not an error: callers branch on Success.
type Settlement struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	TransactionID string  `json:"transactionId,omitempty"`
	Method        string  `json:"paymentMethod"`
	Amount        float64 `json:"amount,omitempty"`
}

// Transaction is one entry in the persisted transaction log.
type Transaction struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	OrderNumber   string    `json:"orderNumber,omitempty"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
}

// OutcomeFunc decides whether a settlement attempt for the given method
// succeeds. The default is pseudo-random with method-specific odds; tests
// inject a deterministic one.
type OutcomeFunc func(method string) bool

// DefaultOutcome settles with the historical per-method success rates.
func DefaultOutcome(method string) bool {
	switch method {
	case MethodCreditCard:
		return rand.Float64() > 0.2
	case MethodVodafoneCash:
		return rand.Float64() > 0.1
	case MethodInstapay:
		return rand.Float64() > 0.15
	default:
		return rand.Float64() > 0.1
	}
}

type Service struct {
	kv      storage.KV
	clock   clock.Clock
	newID   func() string
	outcome OutcomeFunc
	delay   time.Duration

	mu sync.Mutex
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithIDFunc(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func WithOutcome(fn OutcomeFunc) Option {
	return func(s *Service) { s.outcome = fn }
}

func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

func New(kv storage.KV, opts ...Option) *Service {
	s := &Service{
		kv:      kv,
		clock:   clock.Real{},
		newID:   uuid.NewString,
		outcome: DefaultOutcome,
		delay:   2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process simulates settling a payment. It waits the configured delay
// (cancellable through ctx), asks the outcome provider, and on success
// records a transaction.
func (s *Service) Process(ctx context.Context, req Request, method string) (Settlement, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Settlement{}, ctx.Err()
		}
	}

	if !s.outcome(method) {
		slog.InfoContext(ctx, "payment declined", "order_id", req.OrderID, "method", method)
		return Settlement{
			Success: false,
			Message: declineMessage(method),
			Method:  method,
		}, nil
	}

	txn := Transaction{
		ID:            fmt.Sprintf("TXN-%s", s.newID()),
		OrderID:       req.OrderID,
		OrderNumber:   req.OrderNumber,
		Amount:        req.Amount,
		Method:        method,
		Status:        "completed",
		Date:          s.clock.Now(),
		CustomerEmail: req.CustomerEmail,
	}
	if err := s.appendTransaction(ctx, txn); err != nil {
		return Settlement{}, err
	}

	slog.InfoContext(ctx, "payment settled", "order_id", req.OrderID, "method", method, "transaction_id", txn.ID)
	return Settlement{
		Success:       true,
		Message:       successMessage(method),
		TransactionID: txn.ID,
		Method:        method,
		Amount:        req.Amount,
	}, nil
}

// ProcessCash always succeeds immediately; settlement is deferred to
// delivery.
func (s *Service) ProcessCash(req Request) Settlement {
	return Settlement{
		Success: true,
		Message: "Order confirmed. Pay when you receive your order.",
		Method:  MethodCash,
		Amount:  req.Amount,
	}
}

// Status returns the recorded transaction for an order, or a pending
// placeholder when no settlement has happened yet.
func (s *Service) Status(ctx context.Context, orderID string) (Transaction, error) {
	txns, err := s.Transactions(ctx)
	if err != nil {
		return Transaction{}, err
	}
	for _, t := range txns {
		if t.OrderID == orderID {
			return t, nil
		}
	}
	return Transaction{OrderID: orderID, Status: "pending"}, nil
}

// Transaction looks up a log entry by transaction id.
func (s *Service) Transaction(ctx context.Context, transactionID string) (Transaction, bool, error) {
	txns, err := s.Transactions(ctx)
	if err != nil {
		return Transaction{}, false, err
	}
	for _, t := range txns {
		if t.ID == transactionID {
			return t, true, nil
		}
	}
	return Transaction{}, false, nil
}

func (s *Service) Transactions(ctx context.Context) ([]Transaction, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyTransactions)
	if err != nil {
		return nil, fmt.Errorf("payment: load transactions: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var txns []Transaction
	if err := json.Unmarshal(raw, &txns); err != nil {
		slog.WarnContext(ctx, "discarding corrupt transaction log", "error", err)
		return nil, nil
	}
	return txns, nil
}

func (s *Service) appendTransaction(ctx context.Context, txn Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := s.Transactions(ctx)
	if err != nil {
		return err
	}
	txns = append(txns, txn)
	raw, err := json.Marshal(txns)
	if err != nil {
		return fmt.Errorf("payment: encode transactions: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyTransactions, raw); err != nil {
		return fmt.Errorf("payment: save transactions: %w", err)
	}
	return nil
}

func successMessage(method string) string {
	switch method {
	case MethodCreditCard:
		return "Credit card payment successful"
	case MethodVodafoneCash:
		return "Vodafone Cash payment successful"
	case MethodInstapay:
		return "Instapay payment successful"
	default:
		return "Payment successful"
	}
}

func declineMessage(method string) string {
	switch method {
	case MethodCreditCard:
		return "Credit card payment declined"
	case MethodVodafoneCash:
		return "Vodafone Cash payment failed"
	case MethodInstapay:
		return "Instapay payment failed"
	default:
		return "Payment failed"
	}
}
