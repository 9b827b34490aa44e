// Package sequence holds an in-process order sequence counter for tests and
// single instance deployments.
package sequence

import (
	"context"
	"sync"

	"yuandi/internal/core/ports"
	"yuandi/internal/pkg/errs"
)

// Counter is safe for concurrent use. Values are lost on restart.
type Counter struct {
	mu     sync.Mutex
	values map[string]int
}

func NewCounter() *Counter {
	return &Counter{values: make(map[string]int)}
}

var _ ports.SequenceCounter = (*Counter)(nil)

func (c *Counter) NextSequence(ctx context.Context, dateKey string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if dateKey == "" {
		return 0, errs.NewValueIsRequiredError("dateKey")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[dateKey]++
	return c.values[dateKey], nil
}

// Seed makes the next value for dateKey start after last. It never moves a
// counter backwards.
func (c *Counter) Seed(dateKey string, last int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last > c.values[dateKey] {
		c.values[dateKey] = last
	}
}

// Prune forgets every date before beforeKey.
func (c *Counter) Prune(_ context.Context, beforeKey string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed int64
	for key := range c.values {
		if key < beforeKey {
			delete(c.values, key)
			removed++
		}
	}
	return removed, nil
}
