package order

import (
	"errors"
	"strings"
	"time"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/tracking"
	"yuandi/internal/pkg/errs"
)

// Order is the aggregate root of a customer purchase. It owns the customer,
// customs and shipping data, the items, and the lifecycle status.
//
// Order follows these invariants:
//   - Never exists with an Input that failed Validate
//   - The order number is set once, at construction
//   - Each lifecycle timestamp is set exactly once, by its transition
//   - Status changes only through Ship, Complete and Refund
//
// Fields are private; Order is mutated only through its methods.
type Order struct {
	id     kernel.UUID
	number Number
	status Status

	customerName    string
	customerPhone   string
	pccc            string
	shippingAddress string
	items           []Item

	courierCompany   *string
	trackingNumber   *string
	trackingPhotoURL *string

	shippedAt    *time.Time
	completedAt  *time.Time
	refundedAt   *time.Time
	refundReason *string

	createdAt time.Time
	updatedAt time.Time

	clock    kernel.Clock
	resolver tracking.Resolver
	events   []Event

	isConstructed bool
}

// NewOrder validates input and creates an order in Paid status.
//
// Parameters:
//   - number: the order number, typically from GenerateNumber
//   - input: the proposed order; every violation is reported at once
//   - clock: time source for timestamps; nil means kernel.SystemClock
//   - resolver: carrier table for TrackingURL; nil means tracking.DefaultResolver
//
// Returns:
//   - *Order: the created order with createdAt == updatedAt == now
//   - error: *ValidationError for an invalid input, or a number error
//
// The ID stays zero until the order is persisted.
func NewOrder(number Number, input Input, clock kernel.Clock, resolver tracking.Resolver) (*Order, error) {
	if result := Validate(input); !result.Valid {
		return nil, NewValidationError(result.Errors)
	}
	if err := number.Validate(); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(input.Items))
	for _, in := range input.Items {
		price, err := kernel.NewMoney(in.Price)
		if err != nil {
			return nil, err
		}
		item, err := NewItem(in.ProductID, in.ProductName, in.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	o := &Order{
		number:          number,
		status:          Paid,
		customerName:    strings.TrimSpace(input.CustomerName),
		customerPhone:   strings.TrimSpace(input.CustomerPhone),
		pccc:            input.PCCC,
		shippingAddress: strings.TrimSpace(input.ShippingAddress),
		items:           items,
		isConstructed:   true,
	}
	o.setCollaborators(clock, resolver)

	now := o.clock.Now()
	o.createdAt = now
	o.updatedAt = now
	o.record(EventOrderCreated, now)

	return o, nil
}

// RestoreState is the persisted form of an Order.
type RestoreState struct {
	ID               kernel.UUID
	Number           Number
	Status           Status
	CustomerName     string
	CustomerPhone    string
	PCCC             string
	ShippingAddress  string
	Items            []Item
	CourierCompany   *string
	TrackingNumber   *string
	TrackingPhotoURL *string
	ShippedAt        *time.Time
	CompletedAt      *time.Time
	RefundedAt       *time.Time
	RefundReason     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreOrder rebuilds an order loaded from storage. It checks that the
// stored fields are consistent with the stored status but does not re-run
// input validation, so historical orders survive rule changes.
func RestoreOrder(state RestoreState, clock kernel.Clock, resolver tracking.Resolver) (*Order, error) {
	shipped := state.CourierCompany != nil || state.TrackingNumber != nil || state.ShippedAt != nil
	if shipped && (state.CourierCompany == nil || state.TrackingNumber == nil || state.ShippedAt == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"shipping",
			errors.New("courier, tracking number and shipped time must be stored together"),
		)
	}

	var errList []error
	if state.ID.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("id"))
	}
	if len(state.Items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	errList = append(errList,
		state.Number.Validate(),
		state.Status.validateLifecycleFields(shipped, state.CompletedAt != nil, state.RefundedAt != nil),
	)
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	items := make([]Item, len(state.Items))
	copy(items, state.Items)

	o := &Order{
		id:               state.ID,
		number:           state.Number,
		status:           state.Status,
		customerName:     state.CustomerName,
		customerPhone:    state.CustomerPhone,
		pccc:             state.PCCC,
		shippingAddress:  state.ShippingAddress,
		items:            items,
		courierCompany:   state.CourierCompany,
		trackingNumber:   state.TrackingNumber,
		trackingPhotoURL: state.TrackingPhotoURL,
		shippedAt:        state.ShippedAt,
		completedAt:      state.CompletedAt,
		refundedAt:       state.RefundedAt,
		refundReason:     state.RefundReason,
		createdAt:        state.CreatedAt,
		updatedAt:        state.UpdatedAt,
		isConstructed:    true,
	}
	o.setCollaborators(clock, resolver)
	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignID sets the storage identity of a new order. It fails if the order
// already has one.
func (o *Order) AssignID(id kernel.UUID) error {
	if !o.id.IsZero() {
		return errs.NewObjectAlreadyExistsError("orderId", o.id.String())
	}
	if id.IsZero() {
		return errs.NewValueIsRequiredError("orderId")
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.number == other.number
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() Number { return o.number }
func (o *Order) Status() Status { return o.status }
func (o *Order) CustomerName() string { return o.customerName }
func (o *Order) CustomerPhone() string { return o.customerPhone }
func (o *Order) PCCC() string { return o.pccc }
func (o *Order) ShippingAddress() string { return o.shippingAddress }
func (o *Order) CourierCompany() *string { return o.courierCompany }
func (o *Order) TrackingNumber() *string { return o.trackingNumber }
func (o *Order) TrackingPhotoURL() *string { return o.trackingPhotoURL }
func (o *Order) ShippedAt() *time.Time { return o.shippedAt }
func (o *Order) CompletedAt() *time.Time { return o.completedAt }
func (o *Order) RefundedAt() *time.Time { return o.refundedAt }
func (o *Order) RefundReason() *string { return o.refundReason }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) CustomerPhoneDigits() string { return NormalizePhone(o.customerPhone) }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Ship records the courier and tracking number and moves Paid -> Shipped.
//
// Returns:
//   - *InvalidTransitionError when the order is not Paid (including a second Ship)
//   - errs.ValueIsRequiredError when courier or tracking number is blank
func (o *Order) Ship(courier, trackingNumber string, photoURL *string) error {
	next, err := o.status.Ship()
	if err != nil {
		return err
	}

	courier = strings.TrimSpace(courier)
	trackingNumber = strings.TrimSpace(trackingNumber)
	var errList []error
	if courier == "" {
		errList = append(errList, errs.NewValueIsRequiredError("courierCompany"))
	}
	if trackingNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("trackingNumber"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	now := o.clock.Now()
	o.status = next
	o.courierCompany = &courier
	o.trackingNumber = &trackingNumber
	if photoURL != nil && strings.TrimSpace(*photoURL) != "" {
		photo := strings.TrimSpace(*photoURL)
		o.trackingPhotoURL = &photo
	}
	o.shippedAt = &now
	o.updatedAt = now
	o.record(EventOrderShipped, now)
	return nil
}

// Complete moves Paid or Shipped -> Done. Calling it on a Done order changes
// nothing and returns nil. It fails on a Refunded order.
func (o *Order) Complete() error {
	if o.status == Done {
		return nil
	}
	next, err := o.status.Complete()
	if err != nil {
		return err
	}

	now := o.clock.Now()
	o.status = next
	o.completedAt = &now
	o.updatedAt = now
	o.record(EventOrderCompleted, now)
	return nil
}

// Refund moves Paid or Shipped -> Refunded. Calling it on a Refunded order
// changes nothing, including the stored reason. It fails on a Done order.
func (o *Order) Refund(reason string) error {
	if o.status == Refunded {
		return nil
	}
	next, err := o.status.Refund()
	if err != nil {
		return err
	}

	now := o.clock.Now()
	o.status = next
	if reason = strings.TrimSpace(reason); reason != "" {
		o.refundReason = &reason
	}
	o.refundedAt = &now
	o.updatedAt = now
	o.record(EventOrderRefunded, now)
	return nil
}

// CanEdit reports whether customer details and items may still change.
func (o *Order) CanEdit() bool {
	return o.status.CanEdit()
}

// Edit replaces customer details and items of a Paid order. The input is
// validated the same way as on creation.
func (o *Order) Edit(input Input) error {
	if !o.CanEdit() {
		return NewInvalidTransitionError(o.status, OperationEdit)
	}
	if result := Validate(input); !result.Valid {
		return NewValidationError(result.Errors)
	}

	items := make([]Item, 0, len(input.Items))
	for _, in := range input.Items {
		price, err := kernel.NewMoney(in.Price)
		if err != nil {
			return err
		}
		item, err := NewItem(in.ProductID, in.ProductName, in.Quantity, price)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	o.customerName = strings.TrimSpace(input.CustomerName)
	o.customerPhone = strings.TrimSpace(input.CustomerPhone)
	o.pccc = input.PCCC
	o.shippingAddress = strings.TrimSpace(input.ShippingAddress)
	o.items = items
	o.updatedAt = o.clock.Now()
	return nil
}

// TotalAmount is the sum of price times quantity over all items.
func (o *Order) TotalAmount() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalItems is the sum of quantities over all items.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.items {
		total += item.quantity
	}
	return total
}

// TrackingURL resolves the carrier tracking page. It reports false before the
// order is shipped and for carriers missing from the resolver's table.
func (o *Order) TrackingURL() (string, bool) {
	if o.courierCompany == nil || o.trackingNumber == nil {
		return "", false
	}
	return o.resolver.Resolve(*o.courierCompany, *o.trackingNumber)
}

// PullEvents returns the recorded events stamped with the current ID and
// clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	for i := range events {
		events[i].OrderID = o.id
	}
	return events
}

func (o *Order) record(t EventType, at time.Time) {
	o.events = append(o.events, Event{
		Type:        t,
		OrderNumber: o.number,
		Status:      o.status,
		OccurredAt:  at,
	})
}

func (o *Order) setCollaborators(clock kernel.Clock, resolver tracking.Resolver) {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if resolver == nil {
		resolver = tracking.DefaultResolver()
	}
	o.clock = clock
	o.resolver = resolver
}
