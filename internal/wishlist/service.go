// Package wishlist implements the saved-for-later store. Entries are keyed by
// product id alone; an item is either present or absent, there is no quantity.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jcmexdev/mystore/internal/catalog"
	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage"
)

var (
	ErrInvalidProduct = errors.New("wishlist: invalid product")
	ErrAlreadyPresent = errors.New("wishlist: product already in wishlist")
	ErrNotFound       = errors.New("wishlist: product not found in wishlist")
)

// Entry is one saved product. The product fields are a denormalized copy;
// entries are never mutated in place.
type Entry struct {
	ID        string          `json:"id"`
	Product   catalog.Product `json:"product"`
	AddedDate time.Time       `json:"addedDate"`
}

// Action reports which way a Toggle went.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

type Service struct {
	kv    storage.KV
	clock clock.Clock

	// mu serialises read-modify-write cycles so Toggle is atomic: the
	// reported action always matches the final stored state.
	mu sync.Mutex
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func New(kv storage.KV, opts ...Option) *Service {
	s := &Service{kv: kv, clock: clock.Real{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Add(ctx context.Context, product catalog.Product) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, product)
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, productID)
}

// Toggle adds the product when absent and removes it when present, as a
// single atomic step.
func (s *Service) Toggle(ctx context.Context, product catalog.Product) (Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := catalog.NormalizeID(product.ID)
	if id == "" {
		return "", ErrInvalidProduct
	}

	entries, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if indexOf(entries, id) >= 0 {
		if err := s.remove(ctx, id); err != nil {
			return "", err
		}
		return ActionRemoved, nil
	}
	if _, err := s.add(ctx, product); err != nil {
		return "", err
	}
	return ActionAdded, nil
}

func (s *Service) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.kv.Delete(ctx, storage.KeyWishlist); err != nil {
		return 0, fmt.Errorf("wishlist: clear: %w", err)
	}
	return len(entries), nil
}

func (s *Service) Contains(ctx context.Context, productID string) (bool, error) {
	entries, err := s.Items(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(entries, catalog.NormalizeID(productID)) >= 0, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	entries, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (s *Service) Items(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) add(ctx context.Context, product catalog.Product) (Entry, error) {
	id := catalog.NormalizeID(product.ID)
	if id == "" {
		return Entry{}, ErrInvalidProduct
	}
	product.ID = id

	entries, err := s.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	if indexOf(entries, id) >= 0 {
		return Entry{}, ErrAlreadyPresent
	}

	entry := Entry{ID: id, Product: product, AddedDate: s.clock.Now()}
	entries = append(entries, entry)
	if err := s.save(ctx, entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Service) remove(ctx context.Context, productID string) error {
	id := catalog.NormalizeID(productID)
	if id == "" {
		return ErrInvalidProduct
	}

	entries, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(entries, id)
	if i < 0 {
		return ErrNotFound
	}
	entries = append(entries[:i], entries[i+1:]...)
	return s.save(ctx, entries)
}

// load reads the persisted collection, filtering invalid entries
// item-by-item rather than discarding the whole collection.
func (s *Service) load(ctx context.Context) ([]Entry, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyWishlist)
	if err != nil {
		return nil, fmt.Errorf("wishlist: load: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.WarnContext(ctx, "discarding corrupt wishlist data", "error", err)
		return nil, nil
	}

	valid := entries[:0]
	for _, e := range entries {
		if e.ID == "" || catalog.NormalizeID(e.Product.ID) == "" || e.AddedDate.IsZero() {
			continue
		}
		e.ID = catalog.NormalizeID(e.ID)
		valid = append(valid, e)
	}
	return valid, nil
}

func (s *Service) save(ctx context.Context, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("wishlist: encode: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyWishlist, raw); err != nil {
		return fmt.Errorf("wishlist: save: %w", err)
	}
	return nil
}

func indexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
