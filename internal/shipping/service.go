// Package shipping exposes the shipping method table, shipment tracking
// synthesis, and the saved shipping address collection.
package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/mystore/internal/pkg/clock"
	"github.com/jcmexdev/mystore/internal/storage"
)

var ErrAddressNotFound = errors.New("shipping: address not found")

// Option describes one shipping method a customer can pick at checkout.
type Option struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	EstimatedDays int     `json:"estimatedDays"`

	// FreeThreshold is the order subtotal at which this method becomes free.
	FreeThreshold float64 `json:"freeThreshold"`

	PickupLocations []string `json:"pickupLocations,omitempty"`
}

// Address is one saved shipping address.
type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FullName  string `json:"fullName"`
	Street    string `json:"street"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}

// TrackingUpdate is one synthetic event in a shipment's journey.
type TrackingUpdate struct {
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

// Shipment is the synthesized tracking view for a tracking number.
type Shipment struct {
	TrackingNumber    string           `json:"trackingNumber"`
	Status            string           `json:"status"`
	Carrier           string           `json:"carrier"`
	Service           string           `json:"service"`
	EstimatedDelivery time.Time        `json:"estimatedDelivery"`
	Updates           []TrackingUpdate `json:"updates"`
}

type Service struct {
	kv    storage.KV
	clock clock.Clock
	newID func() string

	mu sync.Mutex
}

type ServiceOption func(*Service)

func WithClock(c clock.Clock) ServiceOption {
	return func(s *Service) { s.clock = c }
}

func WithIDFunc(fn func() string) ServiceOption {
	return func(s *Service) { s.newID = fn }
}

func New(kv storage.KV, opts ...ServiceOption) *Service {
	s := &Service{kv: kv, clock: clock.Real{}, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Options returns the fixed shipping method table.
func (s *Service) Options() []Option {
	return []Option{
		{ID: "standard", Name: "Standard Shipping", Description: "Delivery in 5-7 business days", Price: 4.99, EstimatedDays: 7, FreeThreshold: 50.00},
		{ID: "express", Name: "Express Shipping", Description: "Delivery in 2-3 business days", Price: 9.99, EstimatedDays: 3, FreeThreshold: 100.00},
		{ID: "nextday", Name: "Next Day Delivery", Description: "Delivery next business day", Price: 19.99, EstimatedDays: 1, FreeThreshold: 150.00},
		{ID: "pickup", Name: "Store Pickup", Description: "Pick up from nearest store", Price: 0, EstimatedDays: 0,
			PickupLocations: []string{
				"Downtown Store - 123 Main St",
				"Mall Location - 456 Mall Ave",
				"Northside Store - 789 North Rd",
			}},
	}
}

// Quote returns the shipping methods priced for a destination country.
// Domestic rates apply to the US; everything else ships at the international
// rate with a longer window.
func (s *Service) Quote(country string) []Option {
	domestic := strings.EqualFold(country, "USA") || strings.EqualFold(country, "US")
	standard, express := 4.99, 9.99
	stdDays, expDays := 7, 3
	if !domestic {
		standard, express = 14.99, 24.99
		stdDays, expDays = 14, 7
	}
	return []Option{
		{ID: "standard", Name: "Standard Shipping", Price: standard, EstimatedDays: stdDays},
		{ID: "express", Name: "Express Shipping", Price: express, EstimatedDays: expDays},
	}
}

// TrackShipment synthesizes a tracking view for a tracking number. The
// carrier is inferred from the number's prefix; the status progression is
// derived from the number so repeated lookups agree.
func (s *Service) TrackShipment(trackingNumber string) Shipment {
	statuses := []string{"pending", "processing", "shipped", "out_for_delivery", "delivered"}
	status := statuses[int(hashOf(trackingNumber))%len(statuses)]

	now := s.clock.Now()
	return Shipment{
		TrackingNumber:    trackingNumber,
		Status:            status,
		Carrier:           carrierFor(trackingNumber),
		Service:           "Standard Shipping",
		EstimatedDelivery: now.Add(72 * time.Hour),
		Updates:           trackingUpdates(status, now),
	}
}

// Addresses returns the saved addresses, seeding samples on first access.
func (s *Service) Addresses(ctx context.Context) ([]Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs, ok, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		addrs = sampleAddresses()
		if err := s.save(ctx, addrs); err != nil {
			return nil, err
		}
	}
	return addrs, nil
}

// AddAddress saves a new address. The first address, or one flagged default,
// becomes the default.
func (s *Service) AddAddress(ctx context.Context, a Address) (Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs, _, err := s.load(ctx)
	if err != nil {
		return Address{}, err
	}

	if a.IsDefault || len(addrs) == 0 {
		for i := range addrs {
			addrs[i].IsDefault = false
		}
		a.IsDefault = true
	}
	a.ID = "ADDR-" + s.newID()
	addrs = append(addrs, a)
	if err := s.save(ctx, addrs); err != nil {
		return Address{}, err
	}
	return a, nil
}

func (s *Service) UpdateAddress(ctx context.Context, addressID string, a Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range addrs {
		if addrs[i].ID == addressID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrAddressNotFound
	}

	a.ID = addressID
	addrs[idx] = a
	if a.IsDefault {
		for i := range addrs {
			if i != idx {
				addrs[i].IsDefault = false
			}
		}
	}
	return s.save(ctx, addrs)
}

func (s *Service) DeleteAddress(ctx context.Context, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := addrs[:0]
	for _, a := range addrs {
		if a.ID != addressID {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(addrs) {
		return ErrAddressNotFound
	}

	hasDefault := false
	for _, a := range kept {
		hasDefault = hasDefault || a.IsDefault
	}
	if !hasDefault && len(kept) > 0 {
		kept[0].IsDefault = true
	}
	return s.save(ctx, kept)
}

func (s *Service) load(ctx context.Context) ([]Address, bool, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyAddresses)
	if err != nil {
		return nil, false, fmt.Errorf("shipping: load addresses: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	var addrs []Address
	if err := json.Unmarshal(raw, &addrs); err != nil {
		slog.WarnContext(ctx, "discarding corrupt addresses", "error", err)
		return nil, false, nil
	}
	return addrs, true, nil
}

func (s *Service) save(ctx context.Context, addrs []Address) error {
	raw, err := json.Marshal(addrs)
	if err != nil {
		return fmt.Errorf("shipping: encode addresses: %w", err)
	}
	if err := s.kv.Put(ctx, storage.KeyAddresses, raw); err != nil {
		return fmt.Errorf("shipping: save addresses: %w", err)
	}
	return nil
}

func carrierFor(trackingNumber string) string {
	switch {
	case strings.HasPrefix(trackingNumber, "UPS"):
		return "UPS"
	case strings.HasPrefix(trackingNumber, "FEDEX"):
		return "FedEx"
	case strings.HasPrefix(trackingNumber, "USPS"):
		return "USPS"
	case strings.HasPrefix(trackingNumber, "DHL"):
		return "DHL"
	default:
		return "Standard Carrier"
	}
}

func hashOf(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

func trackingUpdates(status string, now time.Time) []TrackingUpdate {
	updates := []TrackingUpdate{
		{Status: "Label Created", Date: now.Add(-72 * time.Hour), Location: "Shipping Facility", Description: "Shipping label has been created"},
		{Status: "Package Received", Date: now.Add(-48 * time.Hour), Location: "Distribution Center", Description: "Package received at facility"},
	}
	switch status {
	case "shipped", "out_for_delivery", "delivered":
		updates = append(updates, TrackingUpdate{Status: "Departed Facility", Date: now.Add(-24 * time.Hour), Location: "Transit Hub", Description: "Package is in transit"})
	}
	switch status {
	case "out_for_delivery", "delivered":
		updates = append(updates, TrackingUpdate{Status: "Out for Delivery", Date: now.Add(-1 * time.Hour), Location: "Local Facility", Description: "Package is out for delivery"})
	}
	if status == "delivered" {
		updates = append(updates, TrackingUpdate{Status: "Delivered", Date: now, Location: "Customer Address", Description: "Package delivered successfully"})
	}
	return updates
}

func sampleAddresses() []Address {
	return []Address{
		{
			ID: "1", IsDefault: true, Name: "Home", FullName: "John Doe",
			Street: "123 Main Street", Apartment: "Apt 4B", City: "New York",
			State: "NY", ZipCode: "10001", Country: "USA", Phone: "123-456-7890",
		},
		{
			ID: "2", Name: "Work", FullName: "John Doe",
			Street: "456 Office Blvd", Apartment: "Suite 300", City: "New York",
			State: "NY", ZipCode: "10005", Country: "USA", Phone: "987-654-3210",
		},
	}
}
