package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/pkg/errs"
	"yuandi/internal/pkg/guard"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery pages through orders, newest first.
//
// Example:
//
//	query, err := NewListOrdersQuery(1, 20, "SHIPPED", nil, nil)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	page   int
	limit  int
	status *order.Status
	from   *time.Time
	to     *time.Time

	guard guard.ConstructorGuard
}

// NewListOrdersQuery defaults page to 1 and limit to DefaultPageLimit when
// they are zero. status may be empty. from and to bound created-at inclusively.
func NewListOrdersQuery(page, limit int, status string, from, to *time.Time) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setPage(page),
		q.setLimit(limit),
		q.setStatus(status),
		q.setRange(from, to),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Page() int { return q.page }
func (q ListOrdersQuery) Limit() int { return q.limit }
func (q ListOrdersQuery) Status() *order.Status { return q.status }
func (q ListOrdersQuery) From() *time.Time { return q.from }
func (q ListOrdersQuery) To() *time.Time { return q.to }

func (q *ListOrdersQuery) setPage(page int) error {
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}

	q.page = page
	return nil
}

func (q *ListOrdersQuery) setLimit(limit int) error {
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 || limit > MaxPageLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageLimit)
	}

	q.limit = limit
	return nil
}

func (q *ListOrdersQuery) setStatus(status string) error {
	if strings.TrimSpace(status) == "" {
		return nil
	}

	s, err := order.ParseStatus(status)
	if err != nil {
		return err
	}

	q.status = &s
	return nil
}

func (q *ListOrdersQuery) setRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return errs.NewValueIsInvalidErrorWithCause(
			"dateRange",
			fmt.Errorf("from %s is after to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
		)
	}

	q.from = from
	q.to = to
	return nil
}
