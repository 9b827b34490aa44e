// Package queries contains read operations that never modify system state.
// Each query is built through a guarded constructor and answered by a handler
// that returns plain response values for the transport layer.
package queries

import (
	"context"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, int64, error)
	FindByCustomer(ctx context.Context, name, phoneDigits string) ([]*order.Order, error)
}
