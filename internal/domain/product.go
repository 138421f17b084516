package domain

import (
	"fmt"
	"math"
	"strings"
)

// Product is a catalog entry. Products are created once at catalog load and
// never mutated afterwards; Stock is an availability ceiling for cart
// operations, not a live reservation.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
}

// Validate normalizes the product in place and reports whether it satisfies
// the catalog invariants: non-empty id/name/category, price > 0 (rounded to
// two decimals) and stock >= 0.
func (p *Product) Validate() error {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	if p.ID == "" || p.Name == "" || p.Category == "" {
		return fmt.Errorf("%w: id, name and category are required", ErrInvalidProduct)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}

	p.Price = Round2(p.Price)
	return nil
}

// Available reports whether the product has at least qty units of stock.
func (p Product) Available(qty int) bool {
	return p.Stock >= qty
}

// Round2 rounds a monetary amount to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
