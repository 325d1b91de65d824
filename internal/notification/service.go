// Package notification implements the user notification feed: a persisted,
// sample-seeded collection with read/unread state.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage"
)

var ErrNotFound = errors.New("notification: notification not found")

type Notification struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Type     string     `json:"type"`
	Icon     string     `json:"icon,omitempty"`
	Date     time.Time  `json:"date"`
	Read     bool       `json:"read"`
	ReadDate *time.Time `json:"readDate,omitempty"`
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

// List returns the feed, seeding the sample notifications on first access.
func (s *Service) List(ctx context.Context) ([]Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		items = s.sample()
		if err := s.save(ctx, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Add prepends a new unread notification.
func (s *Service) Add(ctx context.Context, title, message, kind string) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.load(ctx)
	if err != nil {
		return Notification{}, err
	}
	n := Notification{
		ID:      "NOTIF-" + s.newID(),
		Title:   title,
		Message: message,
		Type:    kind,
		Date:    s.clock.Now(),
	}
	items = append([]Notification{n}, items...)
	if err := s.save(ctx, items); err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			now := s.clock.Now()
			items[i].Read = true
			items[i].ReadDate = &now
			return s.save(ctx, items)
		}
	}
	return ErrNotFound
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	for i := range items {
		items[i].Read = true
		items[i].ReadDate = &now
	}
	return s.save(ctx, items)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, n := range items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(items) {
		return ErrNotFound
	}
	return s.save(ctx, kept)
}

func (s *Service) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, storage.KeyNotifications)
}

func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, item := range items {
		if !item.Read {
			n++
		}
	}
	return n, nil
}

func (s *Service) load(ctx context.Context) ([]Notification, bool, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyNotifications)
	if err != nil {
		return nil, false, fmt.Errorf("notification: load: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	var items []Notification
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.WarnContext(ctx, "discarding corrupt notifications", "error", err)
		return nil, false, nil
	}
	return items, true, nil
}

func (s *Service) save(ctx context.Context, items []Notification) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("notification: encode: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyNotifications, raw); err != nil {
		return fmt.Errorf("notification: save: %w", err)
	}
	return nil
}

func (s *Service) sample() []Notification {
	now := s.clock.Now()
	return []Notification{
		{
			ID:      "1",
			Title:   "Welcome to Our Store!",
			Message: "Thank you for registering. Get 10% off your first order with code WELCOME10.",
			Type:    "success",
			Icon:    "check-circle",
			Date:    now.Add(-48 * time.Hour),
			Read:    true,
		},
		{
			ID:      "2",
			Title:   "Order Shipped",
			Message: "Your order #ORD-12345 has been shipped. Track your package here.",
			Type:    "info",
			Icon:    "truck",
			Date:    now.Add(-24 * time.Hour),
		},
		{
			ID:      "3",
			Title:   "Flash Sale",
			Message: "Up to 40% off electronics this weekend only.",
			Type:    "info",
			Icon:    "tag",
			Date:    now.Add(-6 * time.Hour),
		},
	}
}
