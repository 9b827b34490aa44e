package order

import (
	"errors"
	"strings"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/pkg/errs"
)

// Item is an order line. Immutable once created.
type Item struct {
	productID   string
	productName string
	quantity    int
	price       kernel.Money
}

func NewItem(productID, productName string, quantity int, price kernel.Money) (Item, error) {
	item := Item{
		productID:   strings.TrimSpace(productID),
		productName: strings.TrimSpace(productName),
		quantity:    quantity,
		price:       price,
	}

	var errList []error
	if item.productID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("productId"))
	}
	if quantity < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (i Item) ProductID() string {
	return i.productID
}

// ProductName is optional and may be empty.
func (i Item) ProductName() string {
	return i.productName
}

func (i Item) Quantity() int {
	return i.quantity
}

// Price is the unit price.
func (i Item) Price() kernel.Money {
	return i.price
}

func (i Item) Subtotal() kernel.Money {
	return i.price.Mul(i.quantity)
}
