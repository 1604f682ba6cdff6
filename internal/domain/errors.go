package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checking out a cart without lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidProduct marks catalog data that violates product constraints.
	ErrInvalidProduct = errors.New("invalid product")
)
