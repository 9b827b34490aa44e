package queries

import (
	"errors"
	"strings"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/pkg/errs"
	"yuandi/internal/pkg/guard"
)

var (
	ErrTrackOrdersQueryIsNotConstructed = errors.New(
		"TrackOrdersQuery must be created via NewTrackOrdersQuery constructor",
	)
)

// TrackOrdersQuery is the public customer lookup by name and phone.
type TrackOrdersQuery struct { //nolint:recvcheck //using for validation
	name        string
	phoneDigits string

	guard guard.ConstructorGuard
}

// NewTrackOrdersQuery requires both values. The phone may be given in any
// formatting; only its digits are compared.
func NewTrackOrdersQuery(name, phone string) (TrackOrdersQuery, error) {
	q := TrackOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setName(name),
		q.setPhone(phone),
	); err != nil {
		return TrackOrdersQuery{}, err
	}

	return q, nil
}

func (q TrackOrdersQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrdersQueryIsNotConstructed)
}

func (q TrackOrdersQuery) Name() string {
	return q.name
}

func (q TrackOrdersQuery) PhoneDigits() string {
	return q.phoneDigits
}

func (q *TrackOrdersQuery) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	q.name = name
	return nil
}

func (q *TrackOrdersQuery) setPhone(phone string) error {
	digits := order.NormalizePhone(phone)
	if digits == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	q.phoneDigits = digits
	return nil
}
