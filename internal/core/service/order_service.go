package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ShkryumDev/pizza-delivery-api/internal/metrics"
	"github.com/ShkryumDev/pizza-delivery-api/internal/core/domain"
	"github.com/ShkryumDev/pizza-delivery-api/internal/core/ports"
)

// OrderService orchestrates the order operations: resolve an authorization
// decision, enforce the lifecycle rules, then drive the repository.
type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// authorize runs the policy and converts a denial into the matching domain
// error: concealed denials surface as not-found so non-owners learn nothing
// about which order ids exist.
func (s *OrderService) authorize(actor *domain.User, op domain.Operation, target *domain.Order) error {
	decision := domain.Authorize(actor, op, target)
	if decision.Allowed {
		return nil
	}

	metrics.PolicyDenialsTotal.WithLabelValues(string(op)).Inc()
	if decision.Conceal {
		return domain.ErrOrderNotFound
	}
	return fmt.Errorf("%w: %s", domain.ErrForbidden, decision.Reason)
}

// PlaceOrder creates a new order owned by the acting user. The initial
// status is always PENDING regardless of anything in the request.
func (s *OrderService) PlaceOrder(ctx context.Context, actor *domain.User, input ports.PlaceOrderInput) (*domain.Order, error) {
	if err := s.authorize(actor, domain.OpPlaceOrder, nil); err != nil {
		return nil, err
	}

	size, err := domain.ParseSize(input.PizzaSize)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		Quantity:  input.Quantity,
		PizzaSize: size,
		Status:    domain.StatusPending,
		UserID:    actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Int64("user_id", actor.ID).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersPlacedTotal.WithLabelValues(string(size)).Inc()
	s.logger.Info().Int64("order_id", order.ID).Int64("user_id", actor.ID).Msg("order placed")

	return order, nil
}

// ListAllOrders returns every order in the store. Staff only.
func (s *OrderService) ListAllOrders(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	if err := s.authorize(actor, domain.OpListAllOrders, nil); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// GetOrderByID returns any order by id, regardless of ownership. Staff only.
func (s *OrderService) GetOrderByID(ctx context.Context, actor *domain.User, id int64) (*domain.Order, error) {
	if err := s.authorize(actor, domain.OpGetOrderByID, nil); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ListMyOrders returns the acting user's orders, scoped by the query.
func (s *OrderService) ListMyOrders(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	if err := s.authorize(actor, domain.OpListMyOrders, nil); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, actor.ID)
}

// GetMyOrder returns the order only when it belongs to the acting user.
// A miss and a non-owned order are indistinguishable to the caller.
func (s *OrderService) GetMyOrder(ctx context.Context, actor *domain.User, id int64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, domain.OpGetMyOrder, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderFields sets quantity and size on a non-terminal order.
func (s *OrderService) UpdateOrderFields(ctx context.Context, actor *domain.User, id int64, input ports.UpdateOrderFieldsInput) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, domain.OpUpdateOrderFields, order); err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrOrderFinalized, order.Status)
	}

	size, err := domain.ParseSize(input.PizzaSize)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateFields(ctx, id, input.Quantity, size)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("order_id", id).Int64("user_id", actor.ID).Msg("order fields updated")
	return updated, nil
}

// UpdateOrderStatus transitions an order along the lifecycle state machine.
// Staff only. The repository update is conditional on the status the
// decision was made against, so two concurrent transitions cannot both
// succeed silently.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, actor *domain.User, id int64, status string) (*domain.Order, error) {
	// The policy needs no target here, so deny before touching the store: a
	// non-staff caller must not learn which order ids exist.
	if err := s.authorize(actor, domain.OpUpdateOrderStatus, nil); err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(order.Status), string(next)).Inc()
	s.logger.Info().
		Int64("order_id", id).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Msg("order status updated")

	return updated, nil
}

// DeleteOrder removes an order. Owner or staff.
func (s *OrderService) DeleteOrder(ctx context.Context, actor *domain.User, id int64) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, domain.OpDeleteOrder, order); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("order_id", id).Int64("user_id", actor.ID).Msg("order deleted")
	return nil
}
