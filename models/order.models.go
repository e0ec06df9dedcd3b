package models

import "time"

// OrderStatus is a closed enum; unknown strings are rejected at the edges.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status. Transitions between known
// statuses are not otherwise constrained.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCancelled:
		return true
	}
	return false
}

// Order is an immutable record of a completed checkout, except for Status
// which the owner or an admin may transition. Orders are appended to the
// principal's history and never reordered, so read order equals creation
// order.
type Order struct {
	ID                string      `json:"id"`
	Date              time.Time   `json:"date"`
	Items             []CartEntry `json:"items"`
	Shipping          Address     `json:"shipping"`
	Payment           Payment     `json:"payment"`
	Status            OrderStatus `json:"status"`
	EstimatedDelivery string      `json:"estimatedDelivery"`
}
