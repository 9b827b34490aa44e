package ports

import "context"

// SequenceCounter allocates daily order sequences. Each call returns the next
// value for dateKey, starting at 1. Implementations must be safe for
// concurrent use; gaps are allowed, repeats are not.
type SequenceCounter interface {
	NextSequence(ctx context.Context, dateKey string) (int, error)
}
