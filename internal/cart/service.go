// Package cart implements the shopping cart store: a persisted collection of
// product-quantity lines with merge-on-add semantics and change notifications.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/mystore/internal/catalog"
	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage"
)

// Service owns the cart collection. All state lives in the injected KV store;
// the service itself only holds the subscriber registry.
type Service struct {
	kv    storage.KV
	clock clock.Clock

	// mu serialises read-modify-write cycles over the cart collection so
	// concurrent mutations cannot lose increments or duplicate lines.
	mu sync.Mutex

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func New(kv storage.KV, opts ...Option) *Service {
	s := &Service{
		kv:    kv,
		clock: clock.Real{},
		subs:  make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to receive a Snapshot after every mutation. The
// returned function unregisters it; callers must invoke it on teardown so a
// dead observer never receives stale callbacks.
func (s *Service) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Add puts a product in the cart. If a line for the same product already
// exists its quantity is incremented; the store enforces no upper bound,
// stock checks are the caller's concern.
func (s *Service) Add(ctx context.Context, product catalog.Product, quantity int) (Result, error) {
	if quantity < 1 {
		return Result{}, ErrInvalidQuantity
	}
	id := catalog.NormalizeID(product.ID)
	if id == "" {
		return Result{}, ErrInvalidProduct
	}
	product.ID = id

	s.mu.Lock()
	lines, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return Result{}, err
	}

	var message string
	var lineQty int
	if i := indexOf(lines, id); i >= 0 {
		lines[i].Quantity += quantity
		lineQty = lines[i].Quantity
		message = fmt.Sprintf("Quantity updated to %d", lineQty)
	} else {
		lines = append(lines, Line{
			Product:  product,
			Quantity: quantity,
			AddedAt:  s.clock.Now(),
		})
		lineQty = quantity
		message = "Product added to cart"
	}

	snap, err := s.save(ctx, lines)
	s.mu.Unlock()
	if err != nil {
		return Result{}, err
	}
	s.publish(snap)
	return Result{Message: message, Quantity: lineQty, Count: snap.Count, Total: snap.Total}, nil
}

// Remove deletes the line for the given product id.
func (s *Service) Remove(ctx context.Context, productID string) (Result, error) {
	id := catalog.NormalizeID(productID)
	if id == "" {
		return Result{}, ErrInvalidProduct
	}

	s.mu.Lock()
	lines, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return Result{}, err
	}

	i := indexOf(lines, id)
	if i < 0 {
		s.mu.Unlock()
		return Result{}, ErrNotFound
	}
	lines = append(lines[:i], lines[i+1:]...)

	snap, err := s.save(ctx, lines)
	s.mu.Unlock()
	if err != nil {
		return Result{}, err
	}
	s.publish(snap)
	return Result{Message: "Product removed from cart", Count: snap.Count, Total: snap.Total}, nil
}

// UpdateQuantity overwrites the quantity of an existing line. A quantity of
// zero or less removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (Result, error) {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	id := catalog.NormalizeID(productID)
	if id == "" {
		return Result{}, ErrInvalidProduct
	}

	s.mu.Lock()
	lines, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return Result{}, err
	}

	i := indexOf(lines, id)
	if i < 0 {
		s.mu.Unlock()
		return Result{}, ErrNotFound
	}
	lines[i].Quantity = quantity

	snap, err := s.save(ctx, lines)
	s.mu.Unlock()
	if err != nil {
		return Result{}, err
	}
	s.publish(snap)
	return Result{Message: "Quantity updated", Quantity: quantity, Count: snap.Count, Total: snap.Total}, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	snap, err := s.save(ctx, nil)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

// Snapshot returns the current cart view with its aggregates.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	lines, err := s.load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Lines: lines, Count: countOf(lines), Total: totalOf(lines)}, nil
}

// Items returns a copy of the current cart lines.
func (s *Service) Items(ctx context.Context) ([]Line, error) {
	return s.load(ctx)
}

// Count returns the total item count (sum of line quantities).
func (s *Service) Count(ctx context.Context) (int, error) {
	lines, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return countOf(lines), nil
}

// Total returns the total price of the cart.
func (s *Service) Total(ctx context.Context) (float64, error) {
	lines, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return totalOf(lines), nil
}

// Contains reports whether the cart has a line for the given product id.
func (s *Service) Contains(ctx context.Context, productID string) (bool, error) {
	q, err := s.Quantity(ctx, productID)
	return q > 0, err
}

// Quantity returns the line quantity for the given product id, zero if the
// product is not in the cart.
func (s *Service) Quantity(ctx context.Context, productID string) (int, error) {
	lines, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if i := indexOf(lines, catalog.NormalizeID(productID)); i >= 0 {
		return lines[i].Quantity, nil
	}
	return 0, nil
}

// load reads the persisted collection. Corrupt JSON is discarded and logged,
// never fatal; individually invalid lines are filtered out so one bad record
// cannot poison every subsequent read.
func (s *Service) load(ctx context.Context) ([]Line, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyCart)
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		slog.WarnContext(ctx, "discarding corrupt cart data", "error", err)
		return nil, nil
	}
	return filterValid(lines), nil
}

// save persists the collection and returns the resulting snapshot. Callers
// hold mu and publish the snapshot after releasing it, so a subscriber may
// call back into the service without deadlocking.
func (s *Service) save(ctx context.Context, lines []Line) (Snapshot, error) {
	lines = filterValid(lines)
	raw, err := json.Marshal(lines)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyCart, raw); err != nil {
		return Snapshot{}, fmt.Errorf("cart: save: %w", err)
	}
	return Snapshot{Lines: lines, Count: countOf(lines), Total: totalOf(lines)}, nil
}

func (s *Service) publish(snap Snapshot) {
	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func filterValid(lines []Line) []Line {
	out := lines[:0]
	for _, l := range lines {
		if catalog.NormalizeID(l.Product.ID) == "" || l.Quantity < 1 {
			continue
		}
		l.Product.ID = catalog.NormalizeID(l.Product.ID)
		out = append(out, l)
	}
	return out
}

func indexOf(lines []Line, id string) int {
	for i, l := range lines {
		if l.Product.ID == id {
			return i
		}
	}
	return -1
}

func countOf(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func totalOf(lines []Line) float64 {
	total := decimal.Zero
	for _, l := range lines {
		price := decimal.NewFromFloat(l.Product.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	f, _ := total.Round(2).Float64()
	return f
}
