package commands_test

import (
	"context"
	"testing"
	"time"

	"yuandi/internal/core/application/usecases/commands"
	"yuandi/internal/core/domain/model/exchange"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/domain/model/staff"
	"yuandi/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	args := m.Called(ctx, number)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, name, phoneDigits string) ([]*order.Order, error) {
	args := m.Called(ctx, name, phoneDigits)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) LastNumberForDate(ctx context.Context, dateKey string) (order.Number, bool, error) {
	args := m.Called(ctx, dateKey)
	return args.Get(0).(order.Number), args.Bool(1), args.Error(2)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) TrackedAggregates() []any {
	args := m.Called()
	return args.Get(0).([]any)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Create(ctx context.Context, input order.Input, explicitNumber string) (*order.Order, error) {
	args := m.Called(ctx, input, explicitNumber)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, user *staff.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*staff.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*staff.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPasswordVerifier struct{ mock.Mock }

func (m *MockPasswordVerifier) Verify(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(user *staff.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockExchangeRateProvider struct{ mock.Mock }

func (m *MockExchangeRateProvider) Fetch(ctx context.Context, base, quote string) (exchange.Rate, error) {
	args := m.Called(ctx, base, quote)
	return args.Get(0).(exchange.Rate), args.Error(1)
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

func validInput() order.Input {
	return order.Input{
		CustomerName:    "김철수",
		CustomerPhone:   "010-1234-5678",
		PCCC:            "P123456789012",
		ShippingAddress: "서울특별시 강남구",
		Items: []order.ItemInput{
			{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(100)},
			{ProductID: "p2", Quantity: 1, Price: decimal.NewFromInt(50)},
		},
	}
}

// persistedOrder returns a paid order with an ID and no pending events.
func persistedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD-240101-001", validInput(), &kernel.FixedClock{At: time.Now().UTC()}, nil)
	require.NoError(t, err)
	require.NoError(t, o.AssignID(kernel.NewUUID()))
	o.PullEvents()
	return o
}

func eventsOfType(t order.EventType) any {
	return mock.MatchedBy(func(events []order.Event) bool {
		return len(events) == 1 && events[0].Type == t
	})
}
