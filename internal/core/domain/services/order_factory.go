package services

import (
	"context"
	"errors"
	"strings"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/domain/model/tracking"
	"yuandi/internal/core/ports"
)

var ErrSequenceCounterIsRequired = errors.New("order factory requires a sequence counter")

// OrderFactory creates orders with a number taken from the daily sequence
// counter, or from an explicit number supplied by the caller.
//
// Example:
//
//	factory, _ := NewOrderFactory(counter, kernel.SystemClock{}, tracking.DefaultResolver())
//	o, err := factory.Create(ctx, input, "")
//	if err != nil {
//	    var verr *order.ValidationError
//	    if errors.As(err, &verr) {
//	        // show verr.Messages
//	    }
//	}
type OrderFactory struct {
	counter  ports.SequenceCounter
	clock    kernel.Clock
	resolver tracking.Resolver
}

// NewOrderFactory requires a counter. A nil clock or resolver falls back to
// the system clock and the default carrier table.
func NewOrderFactory(counter ports.SequenceCounter, clock kernel.Clock, resolver tracking.Resolver) (*OrderFactory, error) {
	if counter == nil {
		return nil, ErrSequenceCounterIsRequired
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if resolver == nil {
		resolver = tracking.DefaultResolver()
	}
	return &OrderFactory{
		counter:  counter,
		clock:    clock,
		resolver: resolver,
	}, nil
}

// Create validates input before touching the counter, so a rejected order
// consumes no sequence number. An explicit number bypasses the counter.
func (f *OrderFactory) Create(ctx context.Context, input order.Input, explicitNumber string) (*order.Order, error) {
	if result := order.Validate(input); !result.Valid {
		return nil, order.NewValidationError(result.Errors)
	}

	number, err := f.number(ctx, strings.TrimSpace(explicitNumber))
	if err != nil {
		return nil, err
	}

	return order.NewOrder(number, input, f.clock, f.resolver)
}

func (f *OrderFactory) number(ctx context.Context, explicit string) (order.Number, error) {
	if explicit != "" {
		return order.ParseNumber(explicit)
	}

	now := f.clock.Now()
	seq, err := f.counter.NextSequence(ctx, order.DateKey(now))
	if err != nil {
		return "", err
	}
	return order.GenerateNumber(seq, now)
}

// Clock returns the factory's time source.
func (f *OrderFactory) Clock() kernel.Clock {
	return f.clock
}

// Resolver returns the carrier table used for new orders.
func (f *OrderFactory) Resolver() tracking.Resolver {
	return f.resolver
}
