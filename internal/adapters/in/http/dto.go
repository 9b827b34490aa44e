package http

import (
	"time"

	"yuandi/internal/core/application/usecases/commands"
	"yuandi/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Request bodies carry only structural limits. Business rules are checked by
// order.Validate so that every violation is reported together.

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type OrderRequest struct {
	OrderNumber     string        `json:"orderNumber" validate:"omitempty,max=32"`
	CustomerName    string        `json:"customerName" validate:"max=100"`
	CustomerPhone   string        `json:"customerPhone" validate:"max=32"`
	PCCC            string        `json:"pccc" validate:"max=32"`
	ShippingAddress string        `json:"shippingAddress" validate:"max=500"`
	Items           []ItemRequest `json:"items" validate:"max=100,dive"`
}

type ItemRequest struct {
	ProductID   string          `json:"productId" validate:"max=64"`
	ProductName string          `json:"productName" validate:"max=200"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (r OrderRequest) toInput() order.Input {
	items := make([]order.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, order.ItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return order.Input{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		PCCC:            r.PCCC,
		ShippingAddress: r.ShippingAddress,
		Items:           items,
	}
}

// ShipRequest leaves presence checks to the order so a non-Paid order
// answers 409 even when the details are blank.
type ShipRequest struct {
	CourierCompany   string  `json:"courierCompany" validate:"max=50"`
	TrackingNumber   string  `json:"trackingNumber" validate:"max=100"`
	TrackingPhotoURL *string `json:"trackingPhotoUrl" validate:"omitempty,url"`
}

type RefundRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type ListOrdersParams struct {
	Page   int    `query:"page" validate:"gte=0"`
	Limit  int    `query:"limit" validate:"gte=0"`
	Status string `query:"status"`
	From   string `query:"from"`
	To     string `query:"to"`
}

type TrackParams struct {
	Name  string `query:"name" validate:"required,max=100"`
	Phone string `query:"phone" validate:"required,max=32"`
}

type ExchangeRateParams struct {
	Base  string `query:"base" validate:"omitempty,len=3,alpha"`
	Quote string `query:"quote" validate:"omitempty,len=3,alpha"`
}

type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func toLoginResponse(result commands.LoginResult) LoginResponse {
	return LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User: UserResponse{
			ID:    result.User.ID().String(),
			Email: result.User.Email(),
			Name:  result.User.Name(),
			Role:  result.User.Role().String(),
		},
	}
}
