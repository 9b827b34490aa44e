// Package orderrepo persists order aggregates in PostgreSQL through GORM.
// DTOs in this file mirror the orders and order_items tables; mapping to and
// from the domain happens here and nowhere else.
package orderrepo

import (
	"fmt"
	"time"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Timestamps are owned by the
// aggregate, so GORM's automatic tracking is turned off for them.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber         string    `gorm:"size:32;not null;uniqueIndex"`
	Status              string    `gorm:"size:16;not null;index"`
	CustomerName        string    `gorm:"size:100;not null;index:idx_orders_customer,priority:1"`
	CustomerPhone       string    `gorm:"size:32;not null"`
	CustomerPhoneDigits string    `gorm:"size:20;not null;index:idx_orders_customer,priority:2"`
	PCCC                string    `gorm:"column:pccc;size:13;not null"`
	ShippingAddress     string    `gorm:"type:text;not null"`
	CourierCompany      *string   `gorm:"size:50"`
	TrackingNumber      *string   `gorm:"size:100"`
	TrackingPhotoURL    *string   `gorm:"type:text"`
	ShippedAt           *time.Time
	CompletedAt         *time.Time
	RefundedAt          *time.Time
	RefundReason        *string        `gorm:"type:text"`
	CreatedAt           time.Time      `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt           time.Time      `gorm:"not null;autoUpdateTime:false"`
	Items               []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order. Position keeps the input order.
type OrderItemDTO struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   string          `gorm:"size:64;not null"`
	ProductName string          `gorm:"size:200"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, itemFromDomain(id, i, item))
	}

	return OrderDTO{
		ID:                  id,
		OrderNumber:         aggregate.Number().String(),
		Status:              aggregate.Status().String(),
		CustomerName:        aggregate.CustomerName(),
		CustomerPhone:       aggregate.CustomerPhone(),
		CustomerPhoneDigits: aggregate.CustomerPhoneDigits(),
		PCCC:                aggregate.PCCC(),
		ShippingAddress:     aggregate.ShippingAddress(),
		CourierCompany:      aggregate.CourierCompany(),
		TrackingNumber:      aggregate.TrackingNumber(),
		TrackingPhotoURL:    aggregate.TrackingPhotoURL(),
		ShippedAt:           aggregate.ShippedAt(),
		CompletedAt:         aggregate.CompletedAt(),
		RefundedAt:          aggregate.RefundedAt(),
		RefundReason:        aggregate.RefundReason(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
		Items:               items,
	}
}

func itemFromDomain(orderID uuid.UUID, position int, item order.Item) OrderItemDTO {
	return OrderItemDTO{
		OrderID:     orderID,
		Position:    position,
		ProductID:   item.ProductID(),
		ProductName: item.ProductName(),
		Quantity:    item.Quantity(),
		Price:       item.Price().Decimal(),
	}
}

func toDomain(dto OrderDTO, clock kernel.Clock, resolver tracking.Resolver) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", dto.OrderNumber, err)
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, err := kernel.NewMoney(itemDTO.Price)
		if err != nil {
			return nil, fmt.Errorf("order %s item %d: %w", dto.OrderNumber, itemDTO.Position, err)
		}
		item, err := order.NewItem(itemDTO.ProductID, itemDTO.ProductName, itemDTO.Quantity, price)
		if err != nil {
			return nil, fmt.Errorf("order %s item %d: %w", dto.OrderNumber, itemDTO.Position, err)
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreState{
		ID:               id,
		Number:           order.Number(dto.OrderNumber),
		Status:           status,
		CustomerName:     dto.CustomerName,
		CustomerPhone:    dto.CustomerPhone,
		PCCC:             dto.PCCC,
		ShippingAddress:  dto.ShippingAddress,
		Items:            items,
		CourierCompany:   dto.CourierCompany,
		TrackingNumber:   dto.TrackingNumber,
		TrackingPhotoURL: dto.TrackingPhotoURL,
		ShippedAt:        dto.ShippedAt,
		CompletedAt:      dto.CompletedAt,
		RefundedAt:       dto.RefundedAt,
		RefundReason:     dto.RefundReason,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	}, clock, resolver)
}
