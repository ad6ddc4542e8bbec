package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ShkryumDev/pizza-delivery-api/internal/core/domain"
	"github.com/ShkryumDev/pizza-delivery-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders map[int64]*domain.Order
	nextID int64
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[int64]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.nextID++
	order.ID = r.nextID
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) ListAll(_ context.Context) ([]*domain.Order, error) {
	return r.collect(func(*domain.Order) bool { return true }), nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	return r.collect(func(o *domain.Order) bool { return o.UserID == userID }), nil
}

func (r *stubOrderRepo) collect(keep func(*domain.Order) bool) []*domain.Order {
	out := []*domain.Order{}
	for _, o := range r.orders {
		if keep(o) {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *stubOrderRepo) UpdateFields(_ context.Context, id int64, quantity int, size domain.PizzaSize) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Quantity = quantity
	o.PizzaSize = size
	o.UpdatedAt = time.Now().UTC()
	clone := *o
	return &clone, nil
}

// UpdateStatus mirrors the conditional Mongo update: the stored status must
// still equal from, otherwise the caller lost a race.
func (r *stubOrderRepo) UpdateStatus(_ context.Context, id int64, from, to domain.OrderStatus) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status != from {
		return nil, domain.ErrStaleOrder
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	alice = &domain.User{ID: 1, Username: "alice", IsActive: true}
	bob   = &domain.User{ID: 2, Username: "bob", IsStaff: true, IsActive: true}
)

func newOrderSvc(repo *stubOrderRepo) *OrderService {
	return NewOrderService(repo, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// PlaceOrder
// ---------------------------------------------------------------------------

func TestOrderService_PlaceOrder(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	order, err := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 2, PizzaSize: "LARGE"})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if order.ID != 1 {
		t.Errorf("expected first id 1, got %d", order.ID)
	}
	if order.Quantity != 2 || order.PizzaSize != domain.SizeLarge {
		t.Errorf("unexpected order fields: %+v", order)
	}
	if order.UserID != alice.ID {
		t.Errorf("order owner must be the acting user, got %d", order.UserID)
	}
	if order.Status != domain.StatusPending {
		t.Errorf("new orders must start PENDING, got %s", order.Status)
	}
}

func TestOrderService_PlaceOrder_DefaultSize(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	order, err := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if order.PizzaSize != domain.SizeSmall {
		t.Errorf("missing size must default to SMALL, got %s", order.PizzaSize)
	}
}

// ---------------------------------------------------------------------------
// Staff-only reads
// ---------------------------------------------------------------------------

func TestOrderService_GetOrderByID_StaffOnly(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 2, PizzaSize: "LARGE"})

	// The owner herself is not staff: denied, and the denial is a
	// permission outcome, not a not-found.
	if _, err := svc.GetOrderByID(context.Background(), alice, placed.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-staff must get ErrForbidden, got %v", err)
	}

	// Staff fetches any order regardless of ownership.
	got, err := svc.GetOrderByID(context.Background(), bob, placed.ID)
	if err != nil {
		t.Fatalf("staff fetch failed: %v", err)
	}
	if got.UserID != alice.ID {
		t.Errorf("full record must include the owner reference, got %d", got.UserID)
	}
}

func TestOrderService_ListAllOrders_StaffOnly(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	_, _ = svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})
	_, _ = svc.PlaceOrder(context.Background(), bob, ports.PlaceOrderInput{Quantity: 1})

	if _, err := svc.ListAllOrders(context.Background(), alice); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-staff must get ErrForbidden, got %v", err)
	}

	orders, err := svc.ListAllOrders(context.Background(), bob)
	if err != nil {
		t.Fatalf("staff list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(orders))
	}
}

// ---------------------------------------------------------------------------
// Owner-scoped reads
// ---------------------------------------------------------------------------

func TestOrderService_ListMyOrders_ScopedToOwner(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	_, _ = svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})
	_, _ = svc.PlaceOrder(context.Background(), bob, ports.PlaceOrderInput{Quantity: 3})

	orders, err := svc.ListMyOrders(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListMyOrders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].UserID != alice.ID {
		t.Errorf("listed order not owned by caller: %+v", orders[0])
	}
}

func TestOrderService_GetMyOrder(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 2})

	got, err := svc.GetMyOrder(context.Background(), alice, placed.ID)
	if err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if got.ID != placed.ID {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestOrderService_GetMyOrder_MissAndNonOwnedAreIndistinguishable(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 2})

	// Nonexistent id.
	_, errMiss := svc.GetMyOrder(context.Background(), alice, 99)
	if !errors.Is(errMiss, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for missing id, got %v", errMiss)
	}

	// Existing id owned by someone else: same outcome, never ErrForbidden.
	other := &domain.User{ID: 7, Username: "carol", IsActive: true}
	_, errOther := svc.GetMyOrder(context.Background(), other, placed.ID)
	if !errors.Is(errOther, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for non-owned id, got %v", errOther)
	}
	if errors.Is(errOther, domain.ErrForbidden) {
		t.Fatalf("non-owned read must not surface as a permission outcome")
	}
}

// ---------------------------------------------------------------------------
// Field updates
// ---------------------------------------------------------------------------

func TestOrderService_UpdateOrderFields_RoundTrip(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1, PizzaSize: "SMALL"})

	updated, err := svc.UpdateOrderFields(context.Background(), alice, placed.ID, ports.UpdateOrderFieldsInput{Quantity: 5, PizzaSize: "MEDIUM"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Quantity != 5 || updated.PizzaSize != domain.SizeMedium {
		t.Errorf("update not applied: %+v", updated)
	}

	got, err := svc.GetMyOrder(context.Background(), alice, placed.ID)
	if err != nil {
		t.Fatalf("read-back failed: %v", err)
	}
	if got.Quantity != 5 || got.PizzaSize != domain.SizeMedium {
		t.Errorf("read-back mismatch: %+v", got)
	}
}

func TestOrderService_UpdateOrderFields_OwnershipRequired(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})

	intruder := &domain.User{ID: 9, Username: "trudy", IsActive: true}
	if _, err := svc.UpdateOrderFields(context.Background(), intruder, placed.ID, ports.UpdateOrderFieldsInput{Quantity: 99}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner update must be forbidden, got %v", err)
	}

	// Staff may update any order.
	if _, err := svc.UpdateOrderFields(context.Background(), bob, placed.ID, ports.UpdateOrderFieldsInput{Quantity: 2, PizzaSize: "LARGE"}); err != nil {
		t.Fatalf("staff update failed: %v", err)
	}
}

func TestOrderService_UpdateOrderFields_FinalizedOrder(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})
	repo.orders[placed.ID].Status = domain.StatusDelivered

	_, err := svc.UpdateOrderFields(context.Background(), alice, placed.ID, ports.UpdateOrderFieldsInput{Quantity: 2})
	if !errors.Is(err, domain.ErrOrderFinalized) {
		t.Fatalf("terminal order must reject field updates, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Status updates
// ---------------------------------------------------------------------------

func TestOrderService_UpdateOrderStatus_StaffOnly(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})

	// Even the owner cannot move the lifecycle.
	if _, err := svc.UpdateOrderStatus(context.Background(), alice, placed.ID, "IN_TRANSIT"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-staff status update must be forbidden, got %v", err)
	}

	updated, err := svc.UpdateOrderStatus(context.Background(), bob, placed.ID, "IN_TRANSIT")
	if err != nil {
		t.Fatalf("staff status update failed: %v", err)
	}
	if updated.Status != domain.StatusInTransit {
		t.Errorf("expected IN_TRANSIT, got %s", updated.Status)
	}
}

func TestOrderService_UpdateOrderStatus_ForbiddenBeforeLookup(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	// No order with this id exists. The denial must still be a permission
	// outcome, not a not-found, so non-staff callers cannot use this
	// endpoint to learn which ids exist.
	if _, err := svc.UpdateOrderStatus(context.Background(), alice, 99, "IN_TRANSIT"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-staff status update must be forbidden regardless of id, got %v", err)
	}
}

func TestOrderService_UpdateOrderStatus_InvalidTransition(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})

	// PENDING -> DELIVERED skips IN_TRANSIT.
	if _, err := svc.UpdateOrderStatus(context.Background(), bob, placed.ID, "DELIVERED"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if _, err := svc.UpdateOrderStatus(context.Background(), bob, placed.ID, "BAKING"); !errors.Is(err, domain.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestOrderService_UpdateOrderStatus_TerminalIsFinal(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})
	if _, err := svc.UpdateOrderStatus(context.Background(), bob, placed.ID, "CANCELLED"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	for _, next := range []string{"PENDING", "IN_TRANSIT", "DELIVERED"} {
		if _, err := svc.UpdateOrderStatus(context.Background(), bob, placed.ID, next); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("CANCELLED -> %s: expected ErrInvalidTransition, got %v", next, err)
		}
	}
}

func TestOrderService_UpdateOrderStatus_ConcurrentWriterWins(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})

	// Another writer transitions the order between our read and our write.
	svcRead, _ := svc.GetOrderByID(context.Background(), bob, placed.ID)
	if svcRead.Status != domain.StatusPending {
		t.Fatalf("precondition failed: %s", svcRead.Status)
	}
	repo.orders[placed.ID].Status = domain.StatusCancelled

	// Our transition was legal against the snapshot but the conditional
	// update must lose.
	_, err := svc.UpdateOrderStatus(context.Background(), bob, placed.ID, "IN_TRANSIT")
	if !errors.Is(err, domain.ErrStaleOrder) && !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected a conflict outcome, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestOrderService_DeleteOrder(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo)

	placed, _ := svc.PlaceOrder(context.Background(), alice, ports.PlaceOrderInput{Quantity: 1})

	intruder := &domain.User{ID: 9, Username: "trudy", IsActive: true}
	if err := svc.DeleteOrder(context.Background(), intruder, placed.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner delete must be forbidden, got %v", err)
	}

	if err := svc.DeleteOrder(context.Background(), alice, placed.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.DeleteOrder(context.Background(), alice, placed.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("second delete must be not found, got %v", err)
	}
}
