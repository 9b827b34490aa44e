package commands

import (
	"context"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"
)

// CompleteOrderCommandHandler marks an order done. Completing a done order
// succeeds without changes.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(o *order.Order) error {
		return o.Complete()
	})
}
