package httpx

import "github.com/jcmexdev/mystore/internal/order"

type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type WishlistRequest struct {
	ProductID string `json:"productId"`
}

type ToggleResponse struct {
	Action string `json:"action"`
}

type CheckoutRequest struct {
	Customer      order.CustomerInfo `json:"customer"`
	PaymentMethod string             `json:"paymentMethod"`
	Notes         string             `json:"notes,omitempty"`
	Discount      float64            `json:"discount,omitempty"`
}

type CheckoutResponse struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	CheckoutID    string       `json:"checkoutId"`
	Order         *order.Order `json:"order,omitempty"`
	TransactionID string       `json:"transactionId,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type SetReturnURLRequest struct {
	URL string `json:"url"`
}

type AddReviewRequest struct {
	UserID   int    `json:"userId"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

type AddNotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
