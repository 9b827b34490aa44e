package ports

import (
	"context"

	"yuandi/internal/core/domain/model/order"
)

// EventPublisher delivers order lifecycle events after the change committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
