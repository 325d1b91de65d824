// Package review implements the product review store.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/mystore/internal/catalog"
	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage"
)

var ErrInvalidReview = errors.New("review: invalid review")

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    int       `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	kv    storage.KV
	clock clock.Clock
	newID func() string

	mu sync.Mutex
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithIDFunc(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func New(kv storage.KV, opts ...Option) *Service {
	s := &Service{kv: kv, clock: clock.Real{}, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ForProduct returns all reviews for a product, seeding samples on first
// access to the collection.
func (s *Service) ForProduct(ctx context.Context, productID string) ([]Review, error) {
	id := catalog.NormalizeID(productID)
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	var out []Review
	for _, r := range all {
		if r.ProductID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

// Add validates and stores a review. Ratings run 1 to 5.
func (s *Service) Add(ctx context.Context, r Review) (Review, error) {
	if catalog.NormalizeID(r.ProductID) == "" || r.Rating < 1 || r.Rating > 5 {
		return Review{}, ErrInvalidReview
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, _, err := s.load(ctx)
	if err != nil {
		return Review{}, err
	}
	r.ID = "REV-" + s.newID()
	r.ProductID = catalog.NormalizeID(r.ProductID)
	r.CreatedAt = s.clock.Now()
	all = append(all, r)
	if err := s.save(ctx, all); err != nil {
		return Review{}, err
	}
	return r, nil
}

// Average returns the mean rating for a product, zero when unreviewed.
func (s *Service) Average(ctx context.Context, productID string) (float64, error) {
	reviews, err := s.ForProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0, nil
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), nil
}

func (s *Service) all(ctx context.Context) ([]Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, ok, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		all = s.sample()
		if err := s.save(ctx, all); err != nil {
			return nil, err
		}
	}
	return all, nil
}

func (s *Service) load(ctx context.Context) ([]Review, bool, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyReviews)
	if err != nil {
		return nil, false, fmt.Errorf("review: load: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	var all []Review
	if err := json.Unmarshal(raw, &all); err != nil {
		slog.WarnContext(ctx, "discarding corrupt reviews", "error", err)
		return nil, false, nil
	}
	return all, true, nil
}

func (s *Service) save(ctx context.Context, all []Review) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("review: encode: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyReviews, raw); err != nil {
		return fmt.Errorf("review: save: %w", err)
	}
	return nil
}

func (s *Service) sample() []Review {
	now := s.clock.Now()
	return []Review{
		{ID: "REV-1", ProductID: "101", UserID: 1, UserName: "Ahmed", Rating: 5, Comment: "Excellent sound quality.", CreatedAt: now.Add(-96 * time.Hour)},
		{ID: "REV-2", ProductID: "101", UserID: 2, UserName: "Sara", Rating: 4, Comment: "Comfortable, battery could be better.", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "REV-3", ProductID: "104", UserID: 3, UserName: "Omar", Rating: 4, Comment: "Great value for the price.", CreatedAt: now.Add(-24 * time.Hour)},
	}
}
