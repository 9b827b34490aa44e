package orderrepo

import (
	"context"
	"errors"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/domain/model/tracking"
	"yuandi/internal/core/ports"
	"yuandi/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db       *gorm.DB
	tracker  aggregateTracker
	clock    kernel.Clock
	resolver tracking.Resolver
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. tracker may be
// nil for read-only use outside a unit of work. Restored orders get clock and
// resolver as their collaborators.
func NewGormOrderRepository(
	db *gorm.DB,
	tracker aggregateTracker,
	clock kernel.Clock,
	resolver tracking.Resolver,
) *GormOrderRepository {
	return &GormOrderRepository{
		db:       db,
		tracker:  tracker,
		clock:    clock,
		resolver: resolver,
	}
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// Add inserts a new order with its items and assigns it a fresh ID.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if id.IsZero() {
		id = kernel.NewUUID()
	}

	dto := fromDomain(aggregate)
	dto.ID = id.Bytes()
	for i := range dto.Items {
		dto.Items[i].OrderID = dto.ID
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("orderNumber", dto.OrderNumber, err)
		}
		return err
	}

	if aggregate.ID().IsZero() {
		if err := aggregate.AssignID(id); err != nil {
			return err
		}
	}

	r.track(aggregate)
	return nil
}

// Update rewrites the order row and replaces its items.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.ID().IsZero() {
		return errs.NewValueIsRequiredError("orderId")
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ?", dto.ID).
			Select("*").
			Omit("ID", "CreatedAt", "Items").
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundErrorWithCause("orderId", aggregate.ID().String(), gorm.ErrRecordNotFound)
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
			return err
		}
		if len(dto.Items) == 0 {
			return nil
		}
		return tx.Create(&dto.Items).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("orderNumber", dto.OrderNumber, err)
		}
		return err
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if id.IsZero() {
		return nil, errs.NewValueIsRequiredError("orderId")
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto, r.clock, r.resolver)
}

// GetByNumber retrieves an order by order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "order_number = ?", number.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", number.String())
		}
		return nil, err
	}

	return toDomain(dto, r.clock, r.resolver)
}

// List returns one page of orders matching filter, newest first, along with
// the number of orders matching filter overall.
func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*order.Order{}, 0, nil
	}

	page := r.filtered(ctx, filter).
		Preload("Items", orderedItems).
		Order("created_at DESC").
		Order("order_number DESC").
		Offset(filter.Offset)
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}

	var dtos []OrderDTO
	if err := page.Find(&dtos).Error; err != nil {
		return nil, 0, err
	}

	orders, err := r.toDomainList(dtos)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindByCustomer returns every order placed under the given name and phone.
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, name, phoneDigits string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withItems(ctx).
		Where("customer_name = ? AND customer_phone_digits = ?", name, phoneDigits).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainList(dtos)
}

// LastNumberForDate returns the highest order number issued for dateKey.
// Longer numbers sort first so sequence 1000 ranks above 999.
func (r *GormOrderRepository) LastNumberForDate(ctx context.Context, dateKey string) (order.Number, bool, error) {
	prefix, err := order.NumberPrefixForDate(dateKey)
	if err != nil {
		return "", false, err
	}

	var numbers []string
	err = r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("length(order_number) DESC").
		Order("order_number DESC").
		Limit(1).
		Pluck("order_number", &numbers).Error
	if err != nil {
		return "", false, err
	}
	if len(numbers) == 0 {
		return "", false, nil
	}

	return order.Number(numbers[0]), true, nil
}

func (r *GormOrderRepository) filtered(ctx context.Context, filter ports.OrderFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&OrderDTO{})
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", orderedItems)
}

func (r *GormOrderRepository) toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto, r.clock, r.resolver)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
