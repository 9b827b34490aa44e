package queries_test

import (
	"context"
	"testing"
	"time"

	"yuandi/internal/core/domain/model/exchange"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderReader) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderReader) FindByCustomer(ctx context.Context, name, phoneDigits string) ([]*order.Order, error) {
	args := m.Called(ctx, name, phoneDigits)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockExchangeRateRepository struct{ mock.Mock }

func (m *MockExchangeRateRepository) Save(ctx context.Context, rate exchange.Rate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) Latest(ctx context.Context, base, quote string) (exchange.Rate, error) {
	args := m.Called(ctx, base, quote)
	return args.Get(0).(exchange.Rate), args.Error(1)
}

type MockExchangeRateProvider struct{ mock.Mock }

func (m *MockExchangeRateProvider) Fetch(ctx context.Context, base, quote string) (exchange.Rate, error) {
	args := m.Called(ctx, base, quote)
	return args.Get(0).(exchange.Rate), args.Error(1)
}

func testOrder(t *testing.T, number order.Number) *order.Order {
	t.Helper()
	in := order.Input{
		CustomerName:    "김철수",
		CustomerPhone:   "010-1234-5678",
		PCCC:            "P123456789012",
		ShippingAddress: "서울",
		Items: []order.ItemInput{
			{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(100)},
			{ProductID: "p2", Quantity: 1, Price: decimal.NewFromInt(50)},
		},
	}
	o, err := order.NewOrder(number, in, &kernel.FixedClock{At: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, nil)
	require.NoError(t, err)
	require.NoError(t, o.AssignID(kernel.NewUUID()))
	return o
}
