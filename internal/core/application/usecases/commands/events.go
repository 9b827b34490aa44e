package commands

import (
	"context"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"
)

type eventSource interface {
	PullEvents() []order.Event
}

// publishTracked drains the events of every tracked aggregate and hands them
// to the publisher. It runs after commit; delivery failures do not undo the
// committed change and are reported by the publisher itself.
func publishTracked(ctx context.Context, tracker AggregateTracker, publisher ports.EventPublisher) {
	var events []order.Event
	for _, aggregate := range tracker.TrackedAggregates() {
		if src, ok := aggregate.(eventSource); ok {
			events = append(events, src.PullEvents()...)
		}
	}
	if len(events) == 0 || publisher == nil {
		return
	}
	_ = publisher.Publish(ctx, events...)
}
