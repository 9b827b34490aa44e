package commands

import (
	"context"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"
)

// RefundOrderCommandHandler refunds an order. Refunding a refunded order
// succeeds and keeps the original reason.
type RefundOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

func NewRefundOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) RefundOrderCommandHandler {
	return RefundOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h RefundOrderCommandHandler) Handle(ctx context.Context, cmd RefundOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(), func(o *order.Order) error {
		return o.Refund(cmd.Reason())
	})
}
