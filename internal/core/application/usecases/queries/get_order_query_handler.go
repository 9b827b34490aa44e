package queries

import (
	"context"

	"yuandi/internal/core/domain/model/order"
)

// GetOrderQueryHandler answers GetOrderQuery with the order snapshot.
// A missing order fails with errs.ObjectNotFoundError.
type GetOrderQueryHandler struct {
	orders OrderReader
}

func NewGetOrderQueryHandler(orders OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	return o.Snapshot(), nil
}
