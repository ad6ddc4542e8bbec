package handler

import (
	"github.com/ShkryumDev/pizza-delivery-api/internal/core/domain"
)

// --- Domain → HTTP response ---

func toSummaryResponse(o *domain.Order) orderSummaryResponse {
	return orderSummaryResponse{
		ID:          o.ID,
		Quantity:    o.Quantity,
		PizzaSize:   string(o.PizzaSize),
		OrderStatus: string(o.Status),
	}
}

func toRecordResponse(o *domain.Order) orderRecordResponse {
	return orderRecordResponse{
		ID:          o.ID,
		Quantity:    o.Quantity,
		PizzaSize:   string(o.PizzaSize),
		OrderStatus: string(o.Status),
		UserID:      o.UserID,
		CreatedAt:   o.CreatedAt.UTC(),
		UpdatedAt:   o.UpdatedAt.UTC(),
	}
}

func toRecordResponses(orders []*domain.Order) []orderRecordResponse {
	out := make([]orderRecordResponse, len(orders))
	for i, o := range orders {
		out[i] = toRecordResponse(o)
	}
	return out
}
