package order

import "github.com/shopspring/decimal"

// Input is a proposed order as received from a caller. Any field may be
// missing; Validate reports what is wrong with it.
type Input struct {
	CustomerName    string
	CustomerPhone   string
	PCCC            string
	ShippingAddress string
	Items           []ItemInput
}

type ItemInput struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}
