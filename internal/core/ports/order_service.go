package ports

import (
	"context"

	"github.com/ShkryumDev/pizza-delivery-api/internal/core/domain"
)

// PlaceOrderInput carries the caller-settable fields of a new order.
// Status is deliberately absent: new orders always start in the default
// state, whatever the request body claimed.
type PlaceOrderInput struct {
	Quantity  int
	PizzaSize string // empty = default size
}

// UpdateOrderFieldsInput carries the mutable pre-fulfillment fields.
type UpdateOrderFieldsInput struct {
	Quantity  int
	PizzaSize string
}

// OrderService defines the eight order operations. Every method takes the
// acting user, already resolved from the token subject by the identity
// middleware, and consults the authorization policy before touching the
// store.
type OrderService interface {
	PlaceOrder(ctx context.Context, actor *domain.User, input PlaceOrderInput) (*domain.Order, error)
	ListAllOrders(ctx context.Context, actor *domain.User) ([]*domain.Order, error)
	GetOrderByID(ctx context.Context, actor *domain.User, id int64) (*domain.Order, error)
	ListMyOrders(ctx context.Context, actor *domain.User) ([]*domain.Order, error)
	GetMyOrder(ctx context.Context, actor *domain.User, id int64) (*domain.Order, error)
	UpdateOrderFields(ctx context.Context, actor *domain.User, id int64, input UpdateOrderFieldsInput) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, actor *domain.User, id int64, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, actor *domain.User, id int64) error
}
