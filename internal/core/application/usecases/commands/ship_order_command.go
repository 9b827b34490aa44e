package commands

import (
	"errors"
	"strings"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/pkg/guard"
)

var (
	ErrShipOrderCommandIsNotConstructed = errors.New(
		"ShipOrderCommand must be created via NewShipOrderCommand constructor",
	)
)

// ShipOrderCommand records the courier hand-off of a paid order.
//
// Example:
//
//	cmd, err := NewShipOrderCommand(orderID, "CJ대한통운", "123456789", nil)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	courierCompany string
	trackingNumber string
	photoURL       *string

	guard guard.ConstructorGuard
}

// NewShipOrderCommand requires the order ID. Courier and tracking number are
// trimmed but may be blank: Order.Ship rejects them only after the status
// check, so a non-Paid order reports the illegal transition first.
// photoURL is optional.
func NewShipOrderCommand(
	orderID kernel.UUID,
	courierCompany, trackingNumber string,
	photoURL *string,
) (ShipOrderCommand, error) {
	cmd := ShipOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ShipOrderCommand{}, err
	}
	cmd.courierCompany = strings.TrimSpace(courierCompany)
	cmd.trackingNumber = strings.TrimSpace(trackingNumber)
	if photoURL != nil && strings.TrimSpace(*photoURL) != "" {
		photo := strings.TrimSpace(*photoURL)
		cmd.photoURL = &photo
	}

	return cmd, nil
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ShipOrderCommand) CourierCompany() string { return c.courierCompany }
func (c ShipOrderCommand) TrackingNumber() string { return c.trackingNumber }
func (c ShipOrderCommand) PhotoURL() *string { return c.photoURL }

func (c *ShipOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
