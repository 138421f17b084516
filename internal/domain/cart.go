package domain

import (
	"encoding/json"
	"fmt"
)

// CartItem pairs a product with the quantity held in the cart. Quantity is
// always > 0; a quantity reaching zero means the line is removed.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price * quantity rounded to two decimals.
func (i CartItem) Subtotal() float64 {
	return Round2(i.Product.Price * float64(i.Quantity))
}

// Cart holds the products selected during one conversation session, keyed by
// product id. One cart belongs to exactly one session; it is cleared (not
// destroyed) after a successful checkout.
type Cart struct {
	items map[string]*CartItem
	order []string
}

func NewCart() *Cart {
	return &Cart{items: make(map[string]*CartItem)}
}

// AddItem adds qty units of the product, incrementing an existing line. The
// product's stock acts as a ceiling on the cumulative cart quantity.
func (c *Cart) AddItem(product Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	current := 0
	if item, ok := c.items[product.ID]; ok {
		current = item.Quantity
	}
	if !product.Available(current + qty) {
		return fmt.Errorf("%w: %s has %d units available", ErrInsufficientStock, product.Name, product.Stock)
	}

	if item, ok := c.items[product.ID]; ok {
		item.Quantity += qty
		return nil
	}
	c.items[product.ID] = &CartItem{Product: product, Quantity: qty}
	c.order = append(c.order, product.ID)
	return nil
}

// RemoveItem deletes the line for productID entirely.
func (c *Cart) RemoveItem(productID string) error {
	if _, ok := c.items[productID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotInCart, productID)
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateQuantity sets the line quantity exactly. Zero behaves as removal.
func (c *Cart) UpdateQuantity(productID string, qty int) error {
	item, ok := c.items[productID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotInCart, productID)
	}
	if qty < 0 {
		return ErrInvalidQuantity
	}
	if qty == 0 {
		return c.RemoveItem(productID)
	}
	if !item.Product.Available(qty) {
		return fmt.Errorf("%w: %s has %d units available", ErrInsufficientStock, item.Product.Name, item.Product.Stock)
	}
	item.Quantity = qty
	return nil
}

// Get returns the cart line for productID, if present.
func (c *Cart) Get(productID string) (CartItem, bool) {
	item, ok := c.items[productID]
	if !ok {
		return CartItem{}, false
	}
	return *item, true
}

// Has reports whether productID is in the cart.
func (c *Cart) Has(productID string) bool {
	_, ok := c.items[productID]
	return ok
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, 0, len(c.order))
	for _, id := range c.order {
		if item, ok := c.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out
}

// Total returns the sum of line subtotals rounded to two decimals.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return Round2(total)
}

// ItemCount returns the sum of line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Clear empties the cart in place.
func (c *Cart) Clear() {
	c.items = make(map[string]*CartItem)
	c.order = nil
}

// MarshalJSON serializes the cart as its lines in insertion order so session
// state can round-trip through JSON stores.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.items = make(map[string]*CartItem, len(items))
	c.order = c.order[:0]
	for _, item := range items {
		line := item
		c.items[item.Product.ID] = &line
		c.order = append(c.order, item.Product.ID)
	}
	return nil
}
