package commands

import (
	"context"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"
)

// ShipOrderCommandHandler moves a paid order to shipped.
type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

func NewShipOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns *order.InvalidTransitionError when the order is not paid.
func (h ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(o *order.Order) error {
		return o.Ship(cmd.CourierCompany(), cmd.TrackingNumber(), cmd.PhotoURL())
	})
}
