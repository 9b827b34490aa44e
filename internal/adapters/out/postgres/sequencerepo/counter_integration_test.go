package sequencerepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"yuandi/internal/adapters/out/postgres/orderrepo"
	"yuandi/internal/adapters/out/postgres/pgtest"
	"yuandi/internal/adapters/out/postgres/sequencerepo"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SequenceCounterIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	clock    *kernel.FixedClock
	counter  *sequencerepo.GormSequenceCounter
}

func (suite *SequenceCounterIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(),
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &sequencerepo.SequenceDTO{})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *SequenceCounterIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("order_sequences", "order_items", "orders"))
	suite.clock = &kernel.FixedClock{At: time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)}
	suite.counter = sequencerepo.NewGormSequenceCounter(suite.database.DB, suite.clock)
}

func (suite *SequenceCounterIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *SequenceCounterIntegrationTestSuite) TestNextSequence_StartsAtOneAndIncrements() {
	ctx := context.Background()

	for expected := 1; expected <= 3; expected++ {
		value, err := suite.counter.NextSequence(ctx, "20240101")
		suite.Require().NoError(err)
		suite.Equal(expected, value)
	}

	value, err := suite.counter.NextSequence(ctx, "20240102")
	suite.Require().NoError(err)
	suite.Equal(1, value, "each date has its own sequence")
}

func (suite *SequenceCounterIntegrationTestSuite) TestNextSequence_SeedsFromExistingOrders() {
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(suite.database.DB, nil, suite.clock, nil)
	for _, number := range []order.Number{"ORD-240101-007", "ORD-240101-012"} {
		o, err := order.NewOrder(number, order.Input{
			CustomerName:    "김철수",
			CustomerPhone:   "01012345678",
			PCCC:            "P123456789012",
			ShippingAddress: "서울시",
			Items:           []order.ItemInput{{ProductID: "SKU-1", Quantity: 1, Price: decimal.NewFromInt(10)}},
		}, suite.clock, nil)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(ctx, o))
	}

	value, err := suite.counter.NextSequence(ctx, "20240101")
	suite.Require().NoError(err)
	suite.Equal(13, value)

	value, err = suite.counter.NextSequence(ctx, "20240101")
	suite.Require().NoError(err)
	suite.Equal(14, value)
}

func (suite *SequenceCounterIntegrationTestSuite) TestNextSequence_ConcurrentCallsNeverRepeat() {
	ctx := context.Background()
	const callers = 20

	var wg sync.WaitGroup
	values := make(chan int, callers)
	failures := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := suite.counter.NextSequence(ctx, "20240101")
			if err != nil {
				failures <- err
				return
			}
			values <- value
		}()
	}
	wg.Wait()
	close(values)
	close(failures)

	for err := range failures {
		suite.Require().NoError(err)
	}
	seen := make(map[int]bool, callers)
	for value := range values {
		suite.False(seen[value], "sequence %d allocated twice", value)
		seen[value] = true
	}
	suite.Len(seen, callers)
}

func (suite *SequenceCounterIntegrationTestSuite) TestPrune_RemovesOlderDates() {
	ctx := context.Background()
	for _, key := range []string{"20231230", "20231231", "20240101"} {
		_, err := suite.counter.NextSequence(ctx, key)
		suite.Require().NoError(err)
	}

	removed, err := suite.counter.Prune(ctx, "20240101")
	suite.Require().NoError(err)
	suite.Equal(int64(2), removed)

	value, err := suite.counter.NextSequence(ctx, "20240101")
	suite.Require().NoError(err)
	suite.Equal(2, value)
}

func (suite *SequenceCounterIntegrationTestSuite) TestNextSequence_RequiresDateKey() {
	_, err := suite.counter.NextSequence(context.Background(), "")
	suite.Require().Error(err)
}

func TestSequenceCounterIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SequenceCounterIntegrationTestSuite))
}
