package domain

import "errors"

var (
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidCustomer   = errors.New("invalid customer data")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotInCart         = errors.New("product not in cart")
	ErrEmptyCart         = errors.New("cart is empty")
)
