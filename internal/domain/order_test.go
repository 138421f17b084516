package domain

import (
	"errors"
	"regexp"
	"testing"
)

var orderIDRe = regexp.MustCompile(`^ORD-\d{8}-\d{6}-[0-9a-f]{6}$`)

func TestCreateOrderSnapshotsCart(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(testProduct("prod_001", "Camiseta Básica", 19.99, 50), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	order, err := CreateOrder(cart, "Laura", "Madrid")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if !orderIDRe.MatchString(order.ID) {
		t.Fatalf("unexpected order id format: %q", order.ID)
	}
	if order.Total != 39.98 {
		t.Fatalf("expected total 39.98, got %v", order.Total)
	}
	if order.CustomerName != "Laura" || order.CustomerCity != "Madrid" {
		t.Fatalf("customer data lost: %+v", order)
	}

	// Clearing the cart afterwards must not touch the order.
	cart.Clear()
	if order.ItemCount() != 2 {
		t.Fatalf("order mutated by cart clear, item count = %d", order.ItemCount())
	}
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	if _, err := CreateOrder(NewCart(), "Laura", "Madrid"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if _, err := CreateOrder(nil, "Laura", "Madrid"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("nil cart: expected ErrEmptyCart, got %v", err)
	}
}

func TestCreateOrderRequiresNameAndCity(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(testProduct("prod_001", "Camiseta Básica", 19.99, 50), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := CreateOrder(cart, "  ", "Madrid"); !errors.Is(err, ErrInvalidCustomer) {
		t.Fatalf("blank name: expected ErrInvalidCustomer, got %v", err)
	}
	if _, err := CreateOrder(cart, "Laura", ""); !errors.Is(err, ErrInvalidCustomer) {
		t.Fatalf("blank city: expected ErrInvalidCustomer, got %v", err)
	}
}

func TestConsecutiveOrderIDsAreUnique(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(testProduct("prod_001", "Camiseta Básica", 19.99, 50), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		order, err := CreateOrder(cart, "Laura", "Madrid")
		if err != nil {
			t.Fatalf("create order %d failed: %v", i, err)
		}
		if seen[order.ID] {
			t.Fatalf("duplicate order id %q", order.ID)
		}
		seen[order.ID] = true
	}
}
