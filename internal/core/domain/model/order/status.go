package order

import (
	"fmt"
	"strings"

	"yuandi/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	PAID ──> SHIPPED ──> DONE
//	  │         │
//	  │         └──────> REFUNDED
//	  ├────────────────> DONE
//	  └────────────────> REFUNDED
//
// DONE and REFUNDED are terminal.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Paid is the initial status: payment received, nothing shipped yet.
	Paid

	// Shipped means a courier and tracking number were recorded.
	Shipped

	// Done means the order was delivered and closed.
	Done

	// Refunded means the payment was returned. Reachable from Paid or Shipped.
	Refunded
)

const (
	OperationShip     = "ship"
	OperationComplete = "complete"
	OperationRefund   = "refund"
	OperationEdit     = "edit"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "UNKNOWN",
		Paid:     "PAID",
		Shipped:  "SHIPPED",
		Done:     "DONE",
		Refunded: "REFUNDED",
	}
}

// String returns the persisted and wire form, e.g. "PAID".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ParseStatus accepts the wire form case-insensitively.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s < Paid || s > Refunded {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Done || s == Refunded
}

// Ship transitions Paid -> Shipped.
func (s Status) Ship() (Status, error) {
	if s != Paid {
		return Unknown, NewInvalidTransitionError(s, OperationShip)
	}
	return Shipped, nil
}

// Complete transitions Paid or Shipped -> Done. Done -> Done is allowed so that
// repeated confirmations are harmless.
func (s Status) Complete() (Status, error) {
	switch s {
	case Paid, Shipped, Done:
		return Done, nil
	default:
		return Unknown, NewInvalidTransitionError(s, OperationComplete)
	}
}

// Refund transitions Paid or Shipped -> Refunded. Refunded -> Refunded is allowed.
func (s Status) Refund() (Status, error) {
	switch s {
	case Paid, Shipped, Refunded:
		return Refunded, nil
	default:
		return Unknown, NewInvalidTransitionError(s, OperationRefund)
	}
}

// CanEdit reports whether customer details and items may still change.
func (s Status) CanEdit() bool {
	return s == Paid
}

// validateLifecycleFields checks that the timestamps and shipping data stored
// with a status are the ones its transitions would have produced.
func (s Status) validateLifecycleFields(shipped, completed, refunded bool) error {
	invalid := func(reason string) error {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s order %s", s, reason))
	}

	switch s {
	case Paid:
		if shipped || completed || refunded {
			return invalid("cannot carry shipping, completion or refund data")
		}
	case Shipped:
		if !shipped {
			return invalid("must have shipping data")
		}
		if completed || refunded {
			return invalid("cannot carry completion or refund data")
		}
	case Done:
		if !completed {
			return invalid("must have a completion time")
		}
		if refunded {
			return invalid("cannot carry refund data")
		}
	case Refunded:
		if !refunded {
			return invalid("must have a refund time")
		}
		if completed {
			return invalid("cannot carry completion data")
		}
	default:
		return s.Validate()
	}
	return nil
}
