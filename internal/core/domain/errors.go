package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidCheckout = errors.New("invalid checkout form")

	ErrSnapshotUnavailable = errors.New("session storage unavailable")
)
