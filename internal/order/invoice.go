package order

import (
	"context"
	"fmt"
	"strings"
)

// Invoice renders a deterministic text summary of an order: same order in,
// same bytes out, so invoice output can be cached and diffed.
func (s *Service) Invoice(ctx context.Context, orderID string) (string, error) {
	o, err := s.Order(ctx, orderID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("INVOICE\n")
	b.WriteString("=======================\n")
	fmt.Fprintf(&b, "Order Number: %s\n", o.Number)
	fmt.Fprintf(&b, "Date: %s\n\n", o.CreatedAt.Format("2006-01-02"))

	b.WriteString("BILL TO:\n")
	name := o.CustomerName
	if name == "" {
		name = "Customer"
	}
	fmt.Fprintf(&b, "%s\n", name)
	if a := o.ShippingAddress; a != nil {
		fmt.Fprintf(&b, "%s\n", a.Street)
		fmt.Fprintf(&b, "%s, %s %s\n", a.City, a.State, a.ZipCode)
		fmt.Fprintf(&b, "%s\n", a.Country)
		fmt.Fprintf(&b, "Phone: %s\n", a.Phone)
	}
	if o.CustomerEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", o.CustomerEmail)
	}

	b.WriteString("\nITEMS:\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "  %s x%d\n", item.Product.Name, item.Quantity)
		fmt.Fprintf(&b, "  Price: $%.2f each\n", item.UnitPrice)
		fmt.Fprintf(&b, "  Subtotal: $%.2f\n", item.Subtotal)
	}

	b.WriteString("\nSUMMARY:\n")
	b.WriteString("=======================\n")
	fmt.Fprintf(&b, "Subtotal: $%.2f\n", o.Subtotal)
	fmt.Fprintf(&b, "Shipping: $%.2f\n", o.Shipping)
	fmt.Fprintf(&b, "Tax: $%.2f\n", o.Tax)
	if o.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -$%.2f\n", o.Discount)
	}
	b.WriteString("-----------------------\n")
	fmt.Fprintf(&b, "TOTAL: $%.2f\n\n", o.Total)

	fmt.Fprintf(&b, "Payment Method: %s\n", orDefault(o.Payment.Method, "N/A"))
	fmt.Fprintf(&b, "Payment Status: %s\n", string(o.Payment.Status))
	if o.Payment.TransactionID != "" {
		fmt.Fprintf(&b, "Transaction ID: %s\n", o.Payment.TransactionID)
	}
	b.WriteString("\nThank you for your purchase!\n")
	return b.String(), nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
