package commands

import (
	"context"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"
)

// OrderCreator builds a validated, numbered order. Satisfied by services.OrderFactory.
type OrderCreator interface {
	Create(ctx context.Context, input order.Input, explicitNumber string) (*order.Order, error)
}

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the order through the OrderCreator, persists it, and publishes the
// created event after commit.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, factory, publisher)
//	cmd, _ := NewCreateOrderCommand(input, "")
//
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(o.Number())
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	creator    OrderCreator
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// publisher may be nil, in which case no events are delivered.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	creator OrderCreator,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		creator:    creator,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Validation and numbering happen before the transaction opens. A duplicate
// order number surfaces as errs.ObjectAlreadyExistsError from the repository.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.creator.Create(ctx, cmd.Input(), cmd.OrderNumber())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishTracked(ctx, uow, h.publisher)
	return o, nil
}
