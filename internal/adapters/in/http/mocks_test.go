package http_test

import (
	"context"

	"yuandi/internal/adapters/out/auth"
	"yuandi/internal/core/application/usecases/commands"
	"yuandi/internal/core/application/usecases/queries"
	"yuandi/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockTokenParser struct{ mock.Mock }

func (m *MockTokenParser) Parse(raw string) (auth.Principal, error) {
	args := m.Called(raw)
	return args.Get(0).(auth.Principal), args.Error(1)
}

type MockLoginHandler struct{ mock.Mock }

func (m *MockLoginHandler) Handle(ctx context.Context, cmd commands.LoginCommand) (commands.LoginResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.LoginResult), args.Error(1)
}

// MockOrderCommandHandler serves every command that returns the changed order.
type MockOrderCommandHandler[C any] struct{ mock.Mock }

func (m *MockOrderCommandHandler[C]) Handle(ctx context.Context, cmd C) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (order.Snapshot, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(order.Snapshot), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(
	ctx context.Context,
	query queries.ListOrdersQuery,
) (queries.ListOrdersResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ListOrdersResponse), args.Error(1)
}

type MockTrackOrdersHandler struct{ mock.Mock }

func (m *MockTrackOrdersHandler) Handle(
	ctx context.Context,
	query queries.TrackOrdersQuery,
) ([]queries.TrackedOrder, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.TrackedOrder), args.Error(1)
}

type MockExchangeRateHandler struct{ mock.Mock }

func (m *MockExchangeRateHandler) Handle(
	ctx context.Context,
	query queries.GetExchangeRateQuery,
) (queries.ExchangeRateResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ExchangeRateResponse), args.Error(1)
}
