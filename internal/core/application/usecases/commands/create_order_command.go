package commands

import (
	"errors"
	"strings"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to register a paid order.
// The input itself is validated by the order domain so that every problem is
// reported at once; the command only checks an explicit order number.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(input, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order number: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	input       order.Input
	orderNumber string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates the command. orderNumber may be empty, in
// which case the next daily sequence is used.
func NewCreateOrderCommand(input order.Input, orderNumber string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setInput(input),
		cmd.setOrderNumber(orderNumber),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Input() order.Input {
	return c.input
}

// OrderNumber is the explicit order number, or "".
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

func (c *CreateOrderCommand) setInput(input order.Input) error {
	items := make([]order.ItemInput, len(input.Items))
	copy(items, input.Items)
	input.Items = items

	c.input = input
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil
	}

	if _, err := order.ParseNumber(orderNumber); err != nil {
		return err
	}

	c.orderNumber = orderNumber
	return nil
}
