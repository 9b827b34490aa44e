package commands

import (
	"errors"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// UpdateOrderCommand replaces the customer details and items of a paid order.
type UpdateOrderCommand struct {
	orderID kernel.UUID
	input   order.Input

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID kernel.UUID, input order.Input) (UpdateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}

	items := make([]order.ItemInput, len(input.Items))
	copy(items, input.Items)
	input.Items = items

	return UpdateOrderCommand{
		orderID: orderID,
		input:   input,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) Input() order.Input {
	return c.input
}
