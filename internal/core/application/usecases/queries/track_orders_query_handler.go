package queries

import (
	"context"
	"time"

	"yuandi/internal/core/domain/model/order"
)

// TrackedOrder is the customer-facing view of an order. It leaves out the
// customs code, address and phone.
type TrackedOrder struct {
	OrderNumber    string               `json:"orderNumber"`
	Status         string               `json:"status"`
	Items          []order.ItemSnapshot `json:"items"`
	TotalAmount    float64              `json:"totalAmount"`
	TotalItems     int                  `json:"totalItems"`
	CourierCompany *string              `json:"courierCompany"`
	TrackingNumber *string              `json:"trackingNumber"`
	TrackingURL    *string              `json:"trackingUrl"`
	ShippedAt      *time.Time           `json:"shippedAt"`
	CompletedAt    *time.Time           `json:"completedAt"`
	CreatedAt      time.Time            `json:"createdAt"`
}

type TrackOrdersQueryHandler struct {
	orders OrderReader
}

func NewTrackOrdersQueryHandler(orders OrderReader) TrackOrdersQueryHandler {
	return TrackOrdersQueryHandler{orders: orders}
}

// Handle returns an empty slice, not an error, when nothing matches.
func (h TrackOrdersQueryHandler) Handle(ctx context.Context, query TrackOrdersQuery) ([]TrackedOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.FindByCustomer(ctx, query.Name(), query.PhoneDigits())
	if err != nil {
		return nil, err
	}

	tracked := make([]TrackedOrder, 0, len(orders))
	for _, o := range orders {
		s := o.Snapshot()
		tracked = append(tracked, TrackedOrder{
			OrderNumber:    s.OrderNumber,
			Status:         s.Status,
			Items:          s.Items,
			TotalAmount:    s.TotalAmount,
			TotalItems:     s.TotalItems,
			CourierCompany: s.CourierCompany,
			TrackingNumber: s.TrackingNumber,
			TrackingURL:    s.TrackingURL,
			ShippedAt:      s.ShippedAt,
			CompletedAt:    s.CompletedAt,
			CreatedAt:      s.CreatedAt,
		})
	}

	return tracked, nil
}
