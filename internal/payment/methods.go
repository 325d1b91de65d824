package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/mystore/internal/storage"
)

// ErrMethodNotFound marks an operation referencing an unknown saved method.
var ErrMethodNotFound = errors.New("payment: method not found")

// Method is a saved payment method. Exactly one method is the default at any
// time while the collection is non-empty.
type Method struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Provider   string `json:"provider"`
	Details    string `json:"details"`
	LastFour   string `json:"lastFour,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Expires    string `json:"expires,omitempty"`
	CardHolder string `json:"cardHolder,omitempty"`
	IsDefault  bool   `json:"isDefault"`
}

// Methods returns the saved methods, seeding the sample set on first access.
func (s *Service) Methods(ctx context.Context) ([]Method, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods, ok, err := s.loadMethods(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		methods = sampleMethods()
		if err := s.saveMethods(ctx, methods); err != nil {
			return nil, err
		}
	}
	return methods, nil
}

// AddMethod saves a new method. The first method saved becomes the default.
func (s *Service) AddMethod(ctx context.Context, m Method) (Method, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods, _, err := s.loadMethods(ctx)
	if err != nil {
		return Method{}, err
	}

	m.ID = "PM-" + s.newID()
	m.IsDefault = m.IsDefault || len(methods) == 0
	if m.IsDefault {
		for i := range methods {
			methods[i].IsDefault = false
		}
	}
	methods = append(methods, m)
	if err := s.saveMethods(ctx, methods); err != nil {
		return Method{}, err
	}
	return m, nil
}

// DeleteMethod removes a saved method. If the default was removed, the first
// remaining method is promoted.
func (s *Service) DeleteMethod(ctx context.Context, methodID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods, _, err := s.loadMethods(ctx)
	if err != nil {
		return err
	}

	kept := methods[:0]
	for _, m := range methods {
		if m.ID != methodID {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(methods) {
		return ErrMethodNotFound
	}

	hasDefault := false
	for _, m := range kept {
		hasDefault = hasDefault || m.IsDefault
	}
	if !hasDefault && len(kept) > 0 {
		kept[0].IsDefault = true
	}
	return s.saveMethods(ctx, kept)
}

// SetDefault marks one method as the default and unmarks all others.
func (s *Service) SetDefault(ctx context.Context, methodID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods, _, err := s.loadMethods(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range methods {
		methods[i].IsDefault = methods[i].ID == methodID
		found = found || methods[i].IsDefault
	}
	if !found {
		return ErrMethodNotFound
	}
	return s.saveMethods(ctx, methods)
}

func (s *Service) loadMethods(ctx context.Context) ([]Method, bool, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyPaymentMethods)
	if err != nil {
		return nil, false, fmt.Errorf("payment: load methods: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	var methods []Method
	if err := json.Unmarshal(raw, &methods); err != nil {
		slog.WarnContext(ctx, "discarding corrupt payment methods", "error", err)
		return nil, false, nil
	}
	return methods, true, nil
}

func (s *Service) saveMethods(ctx context.Context, methods []Method) error {
	raw, err := json.Marshal(methods)
	if err != nil {
		return fmt.Errorf("payment: encode methods: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyPaymentMethods, raw); err != nil {
		return fmt.Errorf("payment: save methods: %w", err)
	}
	return nil
}

func sampleMethods() []Method {
	return []Method{
		{
			ID:         "1",
			Type:       "card",
			Provider:   "Visa",
			Details:    "**** 1234",
			LastFour:   "1234",
			Expires:    "12/25",
			CardHolder: "Customer Name",
			IsDefault:  true,
		},
		{
			ID:       "2",
			Type:     MethodVodafoneCash,
			Provider: "Vodafone",
			Details:  "010******78",
			Phone:    "01012345678",
		},
		{
			ID:       "3",
			Type:     MethodInstapay,
			Provider: "Bank Transfer",
			Details:  "CIB - 1234****",
		},
		{
			ID:       "4",
			Type:     MethodCash,
			Provider: "Cash on Delivery",
			Details:  "Pay when you receive",
		},
	}
}
