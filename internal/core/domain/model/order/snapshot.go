package order

import "time"

// Snapshot is the flat serialized form of an Order, including derived totals
// and the resolved tracking URL.
type Snapshot struct {
	ID               *string        `json:"id"`
	OrderNumber      string         `json:"orderNumber"`
	Status           string         `json:"status"`
	CustomerName     string         `json:"customerName"`
	CustomerPhone    string         `json:"customerPhone"`
	PCCC             string         `json:"pccc"`
	ShippingAddress  string         `json:"shippingAddress"`
	Items            []ItemSnapshot `json:"items"`
	CourierCompany   *string        `json:"courierCompany"`
	TrackingNumber   *string        `json:"trackingNumber"`
	TrackingPhotoURL *string        `json:"trackingPhotoUrl"`
	ShippedAt        *time.Time     `json:"shippedAt"`
	CompletedAt      *time.Time     `json:"completedAt"`
	RefundedAt       *time.Time     `json:"refundedAt"`
	RefundReason     *string        `json:"refundReason"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	TotalAmount      float64        `json:"totalAmount"`
	TotalItems       int            `json:"totalItems"`
	TrackingURL      *string        `json:"trackingUrl"`
}

type ItemSnapshot struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Snapshot serializes the order. The ID is null until the order is persisted,
// and TrackingURL is null when it cannot be resolved.
func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		OrderNumber:      o.number.String(),
		Status:           o.status.String(),
		CustomerName:     o.customerName,
		CustomerPhone:    o.customerPhone,
		PCCC:             o.pccc,
		ShippingAddress:  o.shippingAddress,
		Items:            make([]ItemSnapshot, 0, len(o.items)),
		CourierCompany:   o.courierCompany,
		TrackingNumber:   o.trackingNumber,
		TrackingPhotoURL: o.trackingPhotoURL,
		ShippedAt:        o.shippedAt,
		CompletedAt:      o.completedAt,
		RefundedAt:       o.refundedAt,
		RefundReason:     o.refundReason,
		CreatedAt:        o.createdAt,
		UpdatedAt:        o.updatedAt,
		TotalAmount:      o.TotalAmount().Float64(),
		TotalItems:       o.TotalItems(),
	}
	if !o.id.IsZero() {
		id := o.id.String()
		s.ID = &id
	}
	for _, item := range o.items {
		s.Items = append(s.Items, ItemSnapshot{
			ProductID:   item.productID,
			ProductName: item.productName,
			Quantity:    item.quantity,
			Price:       item.price.Float64(),
		})
	}
	if url, ok := o.TrackingURL(); ok {
		s.TrackingURL = &url
	}
	return s
}
