package commands

import (
	"errors"
	"strings"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/pkg/errs"
	"yuandi/internal/pkg/guard"
)

const maxRefundReasonLength = 500

var (
	ErrRefundOrderCommandIsNotConstructed = errors.New(
		"RefundOrderCommand must be created via NewRefundOrderCommand constructor",
	)
)

// RefundOrderCommand returns the payment of a paid or shipped order.
type RefundOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewRefundOrderCommand accepts an empty reason.
func NewRefundOrderCommand(orderID kernel.UUID, reason string) (RefundOrderCommand, error) {
	cmd := RefundOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return RefundOrderCommand{}, err
	}

	return cmd, nil
}

func (c RefundOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefundOrderCommandIsNotConstructed)
}

func (c RefundOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RefundOrderCommand) Reason() string {
	return c.reason
}

func (c *RefundOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RefundOrderCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if n := len([]rune(reason)); n > maxRefundReasonLength {
		return errs.NewValueIsOutOfRangeError("reasonLength", n, 0, maxRefundReasonLength)
	}

	c.reason = reason
	return nil
}
