package ports

import (
	"context"

	"github.com/ShkryumDev/pizza-delivery-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Create inserts a new order, assigning its integer id from the store's
	// sequence. The passed order is updated in place with the assigned id.
	Create(ctx context.Context, order *domain.Order) error

	FindByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListAll returns every order in the store, newest first.
	ListAll(ctx context.Context) ([]*domain.Order, error)

	// ListByUser returns the orders owned by userID, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)

	// UpdateFields sets quantity and size on the order and returns the
	// updated document.
	UpdateFields(ctx context.Context, id int64, quantity int, size domain.PizzaSize) (*domain.Order, error)

	// UpdateStatus transitions the order from the expected current status to
	// next. The update is conditional on the stored status still equalling
	// from: if the order exists but the condition no longer holds, a
	// concurrent writer won and domain.ErrStaleOrder is returned.
	UpdateStatus(ctx context.Context, id int64, from, to domain.OrderStatus) (*domain.Order, error)

	Delete(ctx context.Context, id int64) error
}
