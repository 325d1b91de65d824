package order

import (
	"errors"
	"time"

	"github.com/jcmexdev/mystore/internal/catalog"
)

var (
	// ErrEmptyCart marks a checkout attempted against an empty cart.
	ErrEmptyCart = errors.New("order: cart is empty")

	// ErrNotFound marks an operation referencing a nonexistent order.
	ErrNotFound = errors.New("order: order not found")

	// ErrInvalidStatus marks an unknown status value.
	ErrInvalidStatus = errors.New("order: invalid status")

	// ErrTerminalStatus marks a transition out of delivered or cancelled.
	ErrTerminalStatus = errors.New("order: order is in a terminal status")
)

// Status is the order lifecycle state: a linear forward machine with
// cancelled reachable from any non-terminal state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// PaymentStatus is the settlement state of an order's payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// PaymentInfo is owned exclusively by its parent Order and is the single
// source of truth for the payment state.
type PaymentInfo struct {
	Method        string        `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`
}

// Line is one frozen order line. Product and price are snapshot copies taken
// at creation; later catalog changes never affect historical orders.
type Line struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice float64         `json:"price"`
	Subtotal  float64         `json:"subtotal"`
}

type Address struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Order is an immutable checkout record: once created, the item list and
// snapshot prices never change; only status, tracking, and payment sub-fields
// are mutated post-creation. Orders are never physically deleted.
type Order struct {
	ID        string    `json:"id"`
	Number    string    `json:"orderNumber"`
	CreatedAt time.Time `json:"createdAt"`
	Status    Status    `json:"status"`
	Items     []Line    `json:"items"`

	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount,omitempty"`
	Total    float64 `json:"total"`

	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	Payment         PaymentInfo `json:"payment"`

	CustomerID    int    `json:"customerId,omitempty"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`

	Notes             string     `json:"notes,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	TrackingNumber    string     `json:"trackingNumber,omitempty"`
	Carrier           string     `json:"carrier,omitempty"`
	DeliveredDate     *time.Time `json:"deliveredDate,omitempty"`
	CancelledDate     *time.Time `json:"cancelledDate,omitempty"`
}

// CustomerInfo is the checkout form data an order is created from.
type CustomerInfo struct {
	ID        int    `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// CreateRequest carries everything Create needs besides the cart snapshot.
type CreateRequest struct {
	Customer      CustomerInfo
	PaymentMethod string
	Notes         string
	Discount      float64
}

// Stats aggregates the whole order history. All fields are zero when no
// orders exist.
type Stats struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalSpent        float64 `json:"totalSpent"`
	PendingOrders     int     `json:"pendingOrders"`
	DeliveredOrders   int     `json:"deliveredOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// ReorderResult aggregates the per-line outcomes of a reorder; partial
// failures are reported here, not per-line.
type ReorderResult struct {
	Added  int `json:"added"`
	Failed int `json:"failed"`
}
