package handler

import "time"

// errorResponse documents the standard error envelope on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// placeOrderRequest is the body for placing and for field-updating an order.
// order_status and user_id are deliberately not bound: the lifecycle starts
// at its default and ownership is taken from the authenticated identity.
type placeOrderRequest struct {
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
	PizzaSize string `json:"pizza_size" validate:"omitempty,oneof=SMALL MEDIUM LARGE"`
}

type updateStatusRequest struct {
	OrderStatus string `json:"order_status" validate:"required,oneof=PENDING IN_TRANSIT DELIVERED CANCELLED"`
}

// orderSummaryResponse mirrors the original wire contract for mutations:
// {pizza_size, quantity, id, order_status}.
type orderSummaryResponse struct {
	ID          int64  `json:"id"`
	Quantity    int    `json:"quantity"`
	PizzaSize   string `json:"pizza_size"`
	OrderStatus string `json:"order_status"`
}

// orderRecordResponse is the full record returned to staff and on
// owner-scoped reads; it includes the owner reference.
type orderRecordResponse struct {
	ID          int64     `json:"id"`
	Quantity    int       `json:"quantity"`
	PizzaSize   string    `json:"pizza_size"`
	OrderStatus string    `json:"order_status"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
