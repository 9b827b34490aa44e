package order

import (
	"time"

	"yuandi/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventOrderCreated   EventType = "order.created"
	EventOrderShipped   EventType = "order.shipped"
	EventOrderCompleted EventType = "order.completed"
	EventOrderRefunded  EventType = "order.refunded"
)

// Event records a lifecycle change of an order. OrderID is stamped when the
// events are pulled, because new orders receive their ID on persistence.
type Event struct {
	Type        EventType
	OrderID     kernel.UUID
	OrderNumber Number
	Status      Status
	OccurredAt  time.Time
}
