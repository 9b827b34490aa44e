package commands

import (
	"context"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"
)

// changeOrder loads an order inside a transaction, applies change, stores the
// result and publishes its events after commit. Every lifecycle command runs
// through it.
func changeOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	id kernel.UUID,
	change func(*order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = change(o); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishTracked(ctx, uow, publisher)
	return o, nil
}
