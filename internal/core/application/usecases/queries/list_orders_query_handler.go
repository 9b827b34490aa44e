package queries

import (
	"context"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"
)

// ListOrdersResponse is one page of orders.
type ListOrdersResponse struct {
	Items      []order.Snapshot `json:"items"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int64            `json:"totalPages"`
}

type ListOrdersQueryHandler struct {
	orders OrderReader
}

func NewListOrdersQueryHandler(orders OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	orders, total, err := h.orders.List(ctx, ports.OrderFilter{
		Status:      query.Status(),
		CreatedFrom: query.From(),
		CreatedTo:   query.To(),
		Offset:      (query.Page() - 1) * query.Limit(),
		Limit:       query.Limit(),
	})
	if err != nil {
		return ListOrdersResponse{}, err
	}

	items := make([]order.Snapshot, 0, len(orders))
	for _, o := range orders {
		items = append(items, o.Snapshot())
	}

	limit := int64(query.Limit())
	return ListOrdersResponse{
		Items:      items,
		Page:       query.Page(),
		Limit:      query.Limit(),
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}
