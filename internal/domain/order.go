package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"tiendabot/backend/internal/xid"
)

// Order is an immutable snapshot of a completed purchase. The cart lines are
// copied at creation time, so later mutations of the session cart never alter
// a placed order.
type Order struct {
	ID           string     `json:"id"`
	Items        []CartItem `json:"items"`
	CustomerName string     `json:"customer_name"`
	CustomerCity string     `json:"customer_city"`
	Total        float64    `json:"total"`
	CreatedAt    time.Time  `json:"created_at"`
}

var orderIDMu sync.Mutex

// newOrderID generates an id of the form ORD-YYYYMMDD-HHMMSS-xxxxxx. A short
// enforced delay between generations keeps the timestamp component moving so
// rapid consecutive orders cannot collide.
func newOrderID(at time.Time) string {
	orderIDMu.Lock()
	defer orderIDMu.Unlock()
	id := fmt.Sprintf("ORD-%s-%s", at.Format("20060102-150405"), xid.Hex(3))
	time.Sleep(time.Millisecond)
	return id
}

// CreateOrder materializes an order from a non-empty cart. Name and city are
// trimmed and must be non-empty.
func CreateOrder(cart *Cart, customerName string, customerCity string) (*Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	customerName = strings.TrimSpace(customerName)
	customerCity = strings.TrimSpace(customerCity)
	if customerName == "" || customerCity == "" {
		return nil, fmt.Errorf("%w: name and city are required", ErrInvalidCustomer)
	}

	now := time.Now()
	return &Order{
		ID:           newOrderID(now),
		Items:        cart.Items(),
		CustomerName: customerName,
		CustomerCity: customerCity,
		Total:        cart.Total(),
		CreatedAt:    now,
	}, nil
}

// ItemCount returns the sum of line quantities in the order.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
