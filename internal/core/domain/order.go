package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusInTransit OrderStatus = "IN_TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// PizzaSize enumerates the orderable sizes.
type PizzaSize string

const (
	SizeSmall  PizzaSize = "SMALL"
	SizeMedium PizzaSize = "MEDIUM"
	SizeLarge  PizzaSize = "LARGE"
)

// validTransitions defines the allowed state machine transitions.
// DELIVERED and CANCELLED have no outgoing edges: they are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered, StatusCancelled},
}

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrOrderFinalized     = errors.New("order finalized")
	ErrStaleOrder         = errors.New("order modified concurrently")
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrUnknownSize        = errors.New("unknown pizza size")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ParseStatus converts a wire string into an OrderStatus. The enumeration is
// closed: anything outside the four known values is rejected.
func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// ParseSize converts a wire string into a PizzaSize. An empty string yields
// the default size.
func ParseSize(s string) (PizzaSize, error) {
	if s == "" {
		return SizeSmall, nil
	}
	switch PizzaSize(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return PizzaSize(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSize, s)
}

// CanTransitionTo reports whether a transition from s to next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Order is the core aggregate: a pizza order owned by exactly one user.
type Order struct {
	ID        int64       `json:"id" bson:"_id"`
	Quantity  int         `json:"quantity" bson:"quantity"`
	PizzaSize PizzaSize   `json:"pizza_size" bson:"pizza_size"`
	Status    OrderStatus `json:"order_status" bson:"order_status"`
	UserID    int64       `json:"user_id" bson:"user_id"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}
