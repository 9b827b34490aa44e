// Package sequence allocates order sequences with Redis INCR so several
// service instances can share one counter per day.
package sequence

import (
	"context"
	"fmt"
	"time"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"
	"yuandi/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "order:seq:"

	// DefaultTTL keeps a day's key around long enough to cover clock skew
	// between instances at the KST date boundary.
	DefaultTTL = 48 * time.Hour
)

// The key is seeded only when absent, so concurrent seeders cannot move it
// backwards.
var nextSequence = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	redis.call('SET', KEYS[1], ARGV[1])
end
local value = redis.call('INCR', KEYS[1])
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return value
`)

// numberSource reports the last order number already stored for a day.
type numberSource interface {
	LastNumberForDate(ctx context.Context, dateKey string) (order.Number, bool, error)
}

type Counter struct {
	client *redis.Client
	ttl    time.Duration
	seeds  numberSource
}

// NewCounter creates a counter. seeds may be nil, in which case a new day
// starts at 1.
func NewCounter(client *redis.Client, ttl time.Duration, seeds numberSource) *Counter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Counter{client: client, ttl: ttl, seeds: seeds}
}

var _ ports.SequenceCounter = (*Counter)(nil)

func (c *Counter) NextSequence(ctx context.Context, dateKey string) (int, error) {
	if dateKey == "" {
		return 0, errs.NewValueIsRequiredError("dateKey")
	}
	key := Key(dateKey)

	seed, err := c.seed(ctx, key, dateKey)
	if err != nil {
		return 0, err
	}

	value, err := nextSequence.Run(ctx, c.client, []string{key}, seed, c.ttl.Milliseconds()).Int()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return value, nil
}

func (c *Counter) seed(ctx context.Context, key, dateKey string) (int, error) {
	if c.seeds == nil {
		return 0, nil
	}

	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("exists %s: %w", key, err)
	}
	if exists > 0 {
		return 0, nil
	}

	last, ok, err := c.seeds.LastNumberForDate(ctx, dateKey)
	if err != nil || !ok {
		return 0, err
	}
	return last.Sequence(), nil
}

// Key returns the Redis key holding the counter for dateKey.
func Key(dateKey string) string {
	return keyPrefix + dateKey
}
