// Package order implements the order store: immutable checkout records
// derived from cart snapshots, with a forward-only status machine.
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/mystore/internal/cart"
	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage"
)

const defaultCarrier = "UPS"

// deliveryWindow is how far out the estimated delivery date is set.
const deliveryWindow = 7 * 24 * time.Hour

type Service struct {
	kv      storage.KV
	cart    *cart.Service
	clock   clock.Clock
	newID   func() string
	pricing Pricing

	// mu serialises read-modify-write cycles over the order list.
	mu sync.Mutex
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithIDFunc(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func WithPricing(p Pricing) Option {
	return func(s *Service) { s.pricing = p }
}

func New(kv storage.KV, cartSvc *cart.Service, opts ...Option) *Service {
	s := &Service{
		kv:      kv,
		cart:    cartSvc,
		clock:   clock.Real{},
		newID:   uuid.NewString,
		pricing: DefaultPricing(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create freezes the current cart snapshot into a new pending order. The cart
// itself is not cleared here; that is the checkout orchestrator's last step,
// so a failed settlement leaves the cart intact.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	lines, err := s.cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	items := make([]Line, len(lines))
	subtotals := make([]float64, len(lines))
	for i, l := range lines {
		items[i] = Line{
			ID:        "ITEM-" + s.newID(),
			ProductID: l.Product.ID,
			Product:   l.Product,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
			Subtotal:  lineSubtotal(l.Product.Price, l.Quantity),
		}
		subtotals[i] = items[i].Subtotal
	}

	subtotal := sum2(subtotals)
	shipping := s.pricing.Shipping(subtotal)
	tax := s.pricing.Tax(subtotal)
	total := s.pricing.Total(subtotal, shipping, tax, req.Discount)

	id := s.newID()
	estimated := now.Add(deliveryWindow)
	o := Order{
		ID:        id,
		Number:    orderNumber(id),
		CreatedAt: now,
		Status:    StatusPending,
		Items:     items,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Discount:  req.Discount,
		Total:     total,
		ShippingAddress: &Address{
			Name:    customerName(req.Customer),
			Street:  req.Customer.Street,
			City:    req.Customer.City,
			State:   req.Customer.State,
			ZipCode: req.Customer.ZipCode,
			Country: req.Customer.Country,
			Phone:   req.Customer.Phone,
			Email:   req.Customer.Email,
		},
		PaymentMethod: canonicalMethod(req.PaymentMethod),
		Payment: PaymentInfo{
			Method: req.PaymentMethod,
			Status: PaymentPending,
		},
		CustomerID:        req.Customer.ID,
		CustomerName:      customerName(req.Customer),
		CustomerEmail:     req.Customer.Email,
		Notes:             req.Notes,
		EstimatedDelivery: &estimated,
	}

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	// Most-recent-first is a presentation convenience only.
	orders = append([]Order{o}, orders...)
	if err := s.save(ctx, orders); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "order created", "order_id", o.ID, "order_number", o.Number, "total", o.Total)
	return &o, nil
}

// UpdatePaymentStatus records a settlement outcome. A paid settlement
// advances the order to processing and assigns tracking; a failed one leaves
// the order pending for another attempt.
func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID string, status PaymentStatus, transactionID string) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(orders, orderID)
	if i < 0 {
		return nil, ErrNotFound
	}

	o := &orders[i]
	now := s.clock.Now()
	o.Payment.Status = status
	o.Payment.PaymentDate = &now
	o.Payment.TransactionID = transactionID

	switch status {
	case PaymentPaid:
		if !o.Status.Terminal() {
			o.Status = StatusProcessing
			if o.TrackingNumber == "" {
				o.TrackingNumber = s.trackingNumber()
				o.Carrier = defaultCarrier
			}
		}
	case PaymentFailed:
		if !o.Status.Terminal() {
			o.Status = StatusPending
		}
	}

	if err := s.save(ctx, orders); err != nil {
		return nil, err
	}
	updated := orders[i]
	return &updated, nil
}

// UpdateStatus sets the order status. Transitions out of delivered or
// cancelled are rejected; the historical behaviour allowed any transition,
// this store deliberately tightens it.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(orders, orderID)
	if i < 0 {
		return nil, ErrNotFound
	}

	o := &orders[i]
	if o.Status.Terminal() && status != o.Status {
		return nil, ErrTerminalStatus
	}

	now := s.clock.Now()
	o.Status = status
	switch status {
	case StatusShipped:
		if o.TrackingNumber == "" {
			o.TrackingNumber = s.trackingNumber()
			o.Carrier = defaultCarrier
		}
		if o.EstimatedDelivery == nil {
			estimated := now.Add(deliveryWindow)
			o.EstimatedDelivery = &estimated
		}
	case StatusDelivered:
		o.DeliveredDate = &now
	case StatusCancelled:
		o.CancelledDate = &now
	}

	if err := s.save(ctx, orders); err != nil {
		return nil, err
	}
	updated := orders[i]
	return &updated, nil
}

// Cancel is a convenience alias for UpdateStatus(id, cancelled).
func (s *Service) Cancel(ctx context.Context, orderID string) (*Order, error) {
	return s.UpdateStatus(ctx, orderID, StatusCancelled)
}

// Reorder puts every line of a historical order back into the cart at its
// original quantity, using the frozen product snapshots.
func (s *Service) Reorder(ctx context.Context, orderID string) (ReorderResult, error) {
	o, err := s.Order(ctx, orderID)
	if err != nil {
		return ReorderResult{}, err
	}

	var res ReorderResult
	for _, item := range o.Items {
		if _, err := s.cart.Add(ctx, item.Product, item.Quantity); err != nil {
			slog.WarnContext(ctx, "reorder: line skipped", "order_id", orderID, "product_id", item.ProductID, "error", err)
			res.Failed++
			continue
		}
		res.Added++
	}
	if res.Failed > 0 {
		return res, fmt.Errorf("order: reorder %s: %d of %d items could not be added", orderID, res.Failed, len(o.Items))
	}
	return res, nil
}

// Orders returns the full stored order list.
func (s *Service) Orders(ctx context.Context) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) Order(ctx context.Context, orderID string) (*Order, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(orders, orderID); i >= 0 {
		o := orders[i]
		return &o, nil
	}
	return nil, ErrNotFound
}

func (s *Service) ByNumber(ctx context.Context, number string) (*Order, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Number == number {
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// Recent returns up to limit orders, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Order, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(orders)
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// Stats aggregates the whole order history; it never fails, returning zeroed
// values when no orders exist.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{TotalOrders: len(orders)}
	totals := make([]float64, len(orders))
	for i, o := range orders {
		totals[i] = o.Total
		switch o.Status {
		case StatusPending:
			st.PendingOrders++
		case StatusDelivered:
			st.DeliveredOrders++
		}
	}
	st.TotalSpent = sum2(totals)
	if st.TotalOrders > 0 {
		st.AverageOrderValue = st.TotalSpent / float64(st.TotalOrders)
	}
	return st, nil
}

func (s *Service) load(ctx context.Context) ([]Order, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("order: load: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		slog.WarnContext(ctx, "discarding corrupt order data", "error", err)
		return nil, nil
	}

	valid := orders[:0]
	for _, o := range orders {
		if o.ID == "" {
			continue
		}
		valid = append(valid, o)
	}
	return valid, nil
}

func (s *Service) save(ctx context.Context, orders []Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("order: encode: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyOrders, raw); err != nil {
		return fmt.Errorf("order: save: %w", err)
	}
	return nil
}

// trackingNumber derives a carrier-style number from a fresh id, so a fake id
// generator yields deterministic tracking numbers in tests.
func (s *Service) trackingNumber() string {
	return trackingNumberFor(s.newID())
}

// trackingNumberFor hashes an id into a carrier-style number; the same id
// always maps to the same number.
func trackingNumberFor(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("%s%010d", defaultCarrier, h.Sum64()%10_000_000_000)
}

// orderNumber derives the human-readable number from the order id.
func orderNumber(id string) string {
	compact := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(compact) > 6 {
		compact = compact[:6]
	}
	return "ORD-" + compact
}

func customerName(c CustomerInfo) string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return "Customer"
	}
	return name
}

// canonicalMethod folds the free-form method choice into the stored
// credit_card | paypal | cash vocabulary.
func canonicalMethod(method string) string {
	m := strings.ToLower(method)
	switch {
	case strings.Contains(m, "credit"), strings.Contains(m, "card"),
		strings.Contains(m, "visa"), strings.Contains(m, "mastercard"):
		return "credit_card"
	case strings.Contains(m, "paypal"):
		return "paypal"
	default:
		return "cash"
	}
}

func indexOf(orders []Order, id string) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func sortByCreatedDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
