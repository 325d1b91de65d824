package order

import (
	"context"
	"time"
)

// TrackingEvent is one synthetic milestone in an order's journey.
type TrackingEvent struct {
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// TrackingInfo is the derived tracking view of an order. It is synthesized
// from the current status; each status unlocks additional milestones.
type TrackingInfo struct {
	OrderID           string          `json:"orderId"`
	OrderNumber       string          `json:"orderNumber"`
	Status            Status          `json:"status"`
	Carrier           string          `json:"carrier"`
	TrackingNumber    string          `json:"trackingNumber"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	Service           string          `json:"service"`
	Events            []TrackingEvent `json:"events"`
}

// Track returns the synthesized tracking view for an order. Read-only: a
// missing tracking number is filled in for the view but not persisted.
func (s *Service) Track(ctx context.Context, orderID string) (TrackingInfo, error) {
	o, err := s.Order(ctx, orderID)
	if err != nil {
		return TrackingInfo{}, err
	}

	carrier := o.Carrier
	if carrier == "" {
		carrier = defaultCarrier
	}
	trackingNumber := o.TrackingNumber
	if trackingNumber == "" {
		// Derived from the order id so repeated reads of an unshipped
		// order agree on the number.
		trackingNumber = trackingNumberFor(o.ID)
	}
	estimated := o.EstimatedDelivery
	if estimated == nil {
		e := s.clock.Now().Add(deliveryWindow)
		estimated = &e
	}

	return TrackingInfo{
		OrderID:           o.ID,
		OrderNumber:       o.Number,
		Status:            o.Status,
		Carrier:           carrier,
		TrackingNumber:    trackingNumber,
		EstimatedDelivery: estimated,
		Service:           "Standard Shipping",
		Events:            trackingEvents(o.Status, o.CreatedAt, o.DeliveredDate),
	}, nil
}

// trackingEvents builds the chronological milestone list for a status. Later
// statuses include every earlier milestone.
func trackingEvents(status Status, placedAt time.Time, deliveredAt *time.Time) []TrackingEvent {
	events := []TrackingEvent{
		{
			Status:      "Order Placed",
			Date:        placedAt,
			Location:    "Online Store",
			Description: "Your order has been placed successfully",
		},
		{
			Status:      "Processing",
			Date:        placedAt.Add(1 * time.Hour),
			Location:    "Warehouse",
			Description: "Order is being processed",
		},
	}

	past := func(want ...Status) bool {
		for _, w := range want {
			if status == w {
				return true
			}
		}
		return false
	}

	if past(StatusProcessing, StatusShipped, StatusDelivered) {
		events = append(events, TrackingEvent{
			Status:      "Ready for Shipment",
			Date:        placedAt.Add(24 * time.Hour),
			Location:    "Distribution Center",
			Description: "Package is ready for shipment",
		})
	}
	if past(StatusShipped, StatusDelivered) {
		events = append(events, TrackingEvent{
			Status:      "Shipped",
			Date:        placedAt.Add(48 * time.Hour),
			Location:    "Shipping Hub",
			Description: "Package has been shipped",
		})
	}
	if status == StatusDelivered {
		date := placedAt.Add(deliveryWindow)
		if deliveredAt != nil {
			date = *deliveredAt
		}
		events = append(events, TrackingEvent{
			Status:      "Delivered",
			Date:        date,
			Location:    "Customer Address",
			Description: "Package has been delivered",
		})
	}
	return events
}
