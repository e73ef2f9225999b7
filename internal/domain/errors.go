package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrProductNotFound is returned when order creation references a
	// product the catalog cannot resolve. The whole order is rejected.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound is returned when a webhook references an unknown
	// order. Callers log it and still acknowledge the delivery.
	ErrOrderNotFound = errors.New("order not found")
)
