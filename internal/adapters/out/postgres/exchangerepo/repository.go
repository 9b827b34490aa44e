// Package exchangerepo keeps the history of fetched exchange rates.
package exchangerepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"yuandi/internal/core/domain/model/exchange"
	"yuandi/internal/core/ports"
	"yuandi/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExchangeRateDTO is one observed rate. Rows are only ever appended.
type ExchangeRateDTO struct {
	ID        uint            `gorm:"primaryKey"`
	Base      string          `gorm:"size:3;not null;index:idx_exchange_rates_pair,priority:1"`
	Quote     string          `gorm:"size:3;not null;index:idx_exchange_rates_pair,priority:2"`
	Rate      decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	Source    string          `gorm:"size:100"`
	FetchedAt time.Time       `gorm:"not null;index:idx_exchange_rates_pair,priority:3"`
}

func (ExchangeRateDTO) TableName() string {
	return "exchange_rates"
}

type GormExchangeRateRepository struct {
	db *gorm.DB
}

func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

var _ ports.ExchangeRateRepository = (*GormExchangeRateRepository)(nil)

func (r *GormExchangeRateRepository) Save(ctx context.Context, rate exchange.Rate) error {
	if rate.IsZero() {
		return errs.NewValueIsRequiredError("rate")
	}
	dto := ExchangeRateDTO{
		Base:      rate.Base(),
		Quote:     rate.Quote(),
		Rate:      rate.Value(),
		Source:    rate.Source(),
		FetchedAt: rate.FetchedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormExchangeRateRepository) Latest(ctx context.Context, base, quote string) (exchange.Rate, error) {
	base, quote = strings.ToUpper(base), strings.ToUpper(quote)

	var dto ExchangeRateDTO
	err := r.db.WithContext(ctx).
		Where("base = ? AND quote = ?", base, quote).
		Order("fetched_at DESC").
		Order("id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exchange.Rate{}, errs.NewObjectNotFoundError("exchangeRate", base+"/"+quote)
		}
		return exchange.Rate{}, err
	}

	return exchange.NewRate(dto.Base, dto.Quote, dto.Rate, dto.Source, dto.FetchedAt)
}
