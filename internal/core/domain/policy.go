package domain

// Operation identifies a request an actor wants to perform against the
// order resource.
type Operation string

const (
	OpPlaceOrder        Operation = "place_order"
	OpListAllOrders     Operation = "list_all_orders"
	OpGetOrderByID      Operation = "get_order_by_id"
	OpListMyOrders      Operation = "list_my_orders"
	OpGetMyOrder        Operation = "get_my_order"
	OpUpdateOrderFields Operation = "update_order_fields"
	OpUpdateOrderStatus Operation = "update_order_status"
	OpDeleteOrder       Operation = "delete_order"
)

// Decision is the outcome of an authorization check.
//
// Conceal marks denials that must surface as "not found" rather than
// "forbidden", so a non-owner probing order ids learns nothing about
// which ids exist.
type Decision struct {
	Allowed bool
	Reason  string
	Conceal bool
}

// Allow returns a positive decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a negative decision with a caller-facing reason.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// DenyConcealed returns a negative decision that must be reported as a
// not-found outcome.
func DenyConcealed(reason string) Decision {
	return Decision{Reason: reason, Conceal: true}
}

// Authorize decides whether actor may perform op against target.
//
// It is a pure function over snapshots of user and order state: no I/O, no
// side effects, safe to call from any number of concurrent requests. The
// target may be nil for operations that do not reference an existing order
// (placing or listing); ownership-sensitive operations require it.
func Authorize(actor *User, op Operation, target *Order) Decision {
	if actor == nil {
		return Deny("no authenticated user")
	}
	if !actor.IsActive {
		return Deny("user account disabled")
	}

	switch op {
	case OpPlaceOrder, OpListMyOrders:
		// Any active authenticated user. ListMyOrders results are scoped to
		// the actor by the repository query, not here.
		return Allow()

	case OpListAllOrders, OpGetOrderByID, OpUpdateOrderStatus:
		// Staff may touch any order regardless of ownership.
		if actor.IsStaff {
			return Allow()
		}
		return Deny("staff role required")

	case OpGetMyOrder:
		if target == nil {
			return DenyConcealed("order does not exist")
		}
		if target.UserID == actor.ID {
			return Allow()
		}
		// Not yours: concealed so existence is not confirmed to non-owners.
		return DenyConcealed("order does not belong to user")

	case OpUpdateOrderFields, OpDeleteOrder:
		// Owner or staff. The original implementation allowed any
		// authenticated user here; that was a missing check, not a feature.
		if actor.IsStaff {
			return Allow()
		}
		if target != nil && target.UserID == actor.ID {
			return Allow()
		}
		return Deny("order owner or staff role required")
	}

	return Deny("unknown operation")
}
