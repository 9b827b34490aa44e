package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	httpapi "yuandi/internal/adapters/in/http"
	"yuandi/internal/adapters/out/auth"
	"yuandi/internal/adapters/out/exchangeapi"
	"yuandi/internal/adapters/out/kafka"
	memsequence "yuandi/internal/adapters/out/memory/sequence"
	"yuandi/internal/adapters/out/postgres"
	"yuandi/internal/adapters/out/postgres/exchangerepo"
	"yuandi/internal/adapters/out/postgres/orderrepo"
	"yuandi/internal/adapters/out/postgres/sequencerepo"
	"yuandi/internal/adapters/out/postgres/userrepo"
	redissequence "yuandi/internal/adapters/out/redis/sequence"
	"yuandi/internal/core/application/usecases/commands"
	"yuandi/internal/core/application/usecases/queries"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/domain/model/staff"
	"yuandi/internal/core/domain/model/tracking"
	"yuandi/internal/core/domain/services"
	"yuandi/internal/core/ports"
	"yuandi/internal/jobs"
	"yuandi/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	gormDB *gorm.DB
	logger zerolog.Logger

	clock      kernel.Clock
	resolver   tracking.Resolver
	uowFactory *postgres.GormUnitOfWorkFactory
	orders     *orderrepo.GormOrderRepository

	counter      ports.SequenceCounter
	pruner       *sequencerepo.GormSequenceCounter
	redisClient  *redis.Client
	orderFactory *services.OrderFactory

	publisher *kafka.Publisher
	rates     *exchangerepo.GormExchangeRateRepository
	provider  *exchangeapi.Client
	users     *userrepo.GormUserRepository
	hasher    auth.BcryptHasher
	tokens    *auth.JWTManager
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger zerolog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		logger: logger,
		clock:  kernel.SystemClock{},
		hasher: auth.NewBcryptHasher(0),
	}

	resolver, err := newResolver(cfg)
	if err != nil {
		return nil, err
	}
	c.resolver = resolver

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.clock, c.resolver)
	c.orders = orderrepo.NewGormOrderRepository(gormDB, nil, c.clock, c.resolver)

	if err = c.buildCounter(); err != nil {
		return nil, err
	}
	if c.orderFactory, err = services.NewOrderFactory(c.counter, c.clock, c.resolver); err != nil {
		return nil, err
	}

	c.publisher = kafka.NewPublisher(kafka.ParseBrokers(cfg.KafkaBrokers), cfg.KafkaOrdersTopic, logger)
	c.rates = exchangerepo.NewGormExchangeRateRepository(gormDB)
	c.provider = exchangeapi.NewClient(cfg.ExchangeAPIURL, &http.Client{Timeout: exchangeapi.DefaultTimeout}, c.clock)
	c.users = userrepo.NewGormUserRepository(gormDB)

	if c.tokens, err = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTokenTTL, c.clock); err != nil {
		return nil, err
	}

	return c, nil
}

func newResolver(cfg Config) (tracking.Resolver, error) {
	if cfg.CarrierTemplatesFile == "" {
		return tracking.DefaultResolver(), nil
	}
	templates, err := LoadCarrierTemplates(cfg.CarrierTemplatesFile)
	if err != nil {
		return nil, err
	}
	return tracking.NewTemplateResolver(templates), nil
}

func (c *CompositionRoot) buildCounter() error {
	switch c.cfg.SequenceBackend {
	case SequenceBackendRedis:
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
			DB:       c.cfg.RedisDB,
		})
		c.counter = redissequence.NewCounter(c.redisClient, redissequence.DefaultTTL, c.orders)
	case SequenceBackendMemory:
		c.counter = memsequence.NewCounter()
	case SequenceBackendPostgres, "":
		c.pruner = sequencerepo.NewGormSequenceCounter(c.gormDB, c.clock)
		c.counter = c.pruner
	default:
		return errs.NewValueIsInvalidErrorWithCause("sequenceBackend",
			fmt.Errorf("%q is not a sequence backend", c.cfg.SequenceBackend))
	}
	return nil
}

// Prepare checks external dependencies and fills startup state: the in-memory
// counter learns today's last order number and the seed admin is created.
func (c *CompositionRoot) Prepare(ctx context.Context) error {
	if c.redisClient != nil {
		if err := c.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	}

	if counter, ok := c.counter.(*memsequence.Counter); ok {
		dateKey := order.DateKey(c.clock.Now())
		last, found, err := c.orders.LastNumberForDate(ctx, dateKey)
		if err != nil {
			return fmt.Errorf("seed in-memory sequence: %w", err)
		}
		if found {
			counter.Seed(dateKey, last.Sequence())
		}
	}

	return c.seedAdmin(ctx)
}

func (c *CompositionRoot) seedAdmin(ctx context.Context) error {
	if c.cfg.SeedAdminEmail == "" {
		return nil
	}

	_, err := c.users.GetByEmail(ctx, c.cfg.SeedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	hash, err := c.hasher.Hash(c.cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	admin, err := staff.NewUser(kernel.NewUUID(), c.cfg.SeedAdminEmail, c.cfg.SeedAdminName, hash, staff.RoleAdmin, true)
	if err != nil {
		return err
	}
	if err = c.users.Add(ctx, admin); err != nil && !errors.Is(err, errs.ErrObjectAlreadyExists) {
		return err
	}

	c.logger.Info().Str("email", admin.Email()).Msg("seed admin created")
	return nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.orderFactory, c.publisher)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRefundOrderCommandHandler() commands.RefundOrderCommandHandler {
	return commands.NewRefundOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.users, c.hasher, c.tokens)
}

func (c *CompositionRoot) CreateRefreshExchangeRateCommandHandler() commands.RefreshExchangeRateCommandHandler {
	return commands.NewRefreshExchangeRateCommandHandler(c.provider, c.rates)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateTrackOrdersQueryHandler() queries.TrackOrdersQueryHandler {
	return queries.NewTrackOrdersQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetExchangeRateQueryHandler() queries.GetExchangeRateQueryHandler {
	return queries.NewGetExchangeRateQueryHandler(
		c.rates, c.provider, c.clock, c.cfg.ExchangeRateMaxAge, c.cfg.ExchangeRateFallback, c.logger,
	)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpapi.Server, error) {
	return httpapi.NewServer(httpapi.Handlers{
		Login:         c.CreateLoginCommandHandler(),
		CreateOrder:   c.CreateCreateOrderCommandHandler(),
		UpdateOrder:   c.CreateUpdateOrderCommandHandler(),
		ShipOrder:     c.CreateShipOrderCommandHandler(),
		CompleteOrder: c.CreateCompleteOrderCommandHandler(),
		RefundOrder:   c.CreateRefundOrderCommandHandler(),
		GetOrder:      c.CreateGetOrderQueryHandler(),
		ListOrders:    c.CreateListOrdersQueryHandler(),
		TrackOrders:   c.CreateTrackOrdersQueryHandler(),
		ExchangeRate:  c.CreateGetExchangeRateQueryHandler(),
	}, c.tokens, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	scheduled := []jobs.Job{
		jobs.NewExchangeRateRefreshJob(c.CreateRefreshExchangeRateCommandHandler(), "", c.logger),
	}
	// Redis keys expire on their own.
	if c.pruner != nil {
		scheduled = append(scheduled, jobs.NewSequencePruningJob(c.pruner, c.clock, 0, "", c.logger))
	} else if counter, ok := c.counter.(*memsequence.Counter); ok {
		scheduled = append(scheduled, jobs.NewSequencePruningJob(counter, c.clock, 0, "", c.logger))
	}
	return jobs.NewJobManager(c.logger, scheduled...)
}

// Close releases connections held outside the database pool.
func (c *CompositionRoot) Close() error {
	var errList []error
	if err := c.publisher.Close(); err != nil {
		errList = append(errList, fmt.Errorf("close kafka publisher: %w", err))
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
