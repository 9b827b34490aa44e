// Package ports defines the contracts between the order core and its
// infrastructure: persistence, sequence allocation, event delivery, exchange
// rates and staff authentication.
package ports

import (
	"context"
	"time"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
)

// OrderFilter narrows ListOrders. Zero fields do not filter.
type OrderFilter struct {
	Status      *order.Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Offset      int
	Limit       int
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order and assigns its ID.
	// A duplicate order number fails with errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by ID, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its order number, or errs.ObjectNotFoundError.
	GetByNumber(ctx context.Context, number order.Number) (*order.Order, error)

	// List returns one page of orders, newest first, and the total match count.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, int64, error)

	// FindByCustomer returns the orders of a customer, newest first. phoneDigits
	// is compared against the stored phone with everything but digits removed.
	FindByCustomer(ctx context.Context, name, phoneDigits string) ([]*order.Order, error)

	// LastNumberForDate returns the highest order number issued on the KST date
	// identified by dateKey (YYYYMMDD). ok is false when there is none.
	LastNumberForDate(ctx context.Context, dateKey string) (number order.Number, ok bool, err error)
}
