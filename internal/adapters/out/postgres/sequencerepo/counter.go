// Package sequencerepo allocates daily order sequences from an
// order_sequences table, one row per KST date.
package sequencerepo

import (
	"context"
	"fmt"
	"time"

	"yuandi/internal/adapters/out/postgres/orderrepo"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/ports"
	"yuandi/internal/pkg/errs"

	"gorm.io/gorm"
)

// SequenceDTO is one row of order_sequences.
type SequenceDTO struct {
	DateKey   string    `gorm:"primaryKey;size:8"`
	LastValue int       `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (SequenceDTO) TableName() string {
	return "order_sequences"
}

const upsertSequence = `
INSERT INTO order_sequences (date_key, last_value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (date_key) DO UPDATE
SET last_value = order_sequences.last_value + 1, updated_at = EXCLUDED.updated_at
RETURNING last_value`

// GormSequenceCounter implements ports.SequenceCounter with an atomic upsert.
// The first allocation of a day starts after the highest order number already
// stored for that day, so switching backends mid-day never repeats a number.
type GormSequenceCounter struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewGormSequenceCounter(db *gorm.DB, clock kernel.Clock) *GormSequenceCounter {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &GormSequenceCounter{db: db, clock: clock}
}

var _ ports.SequenceCounter = (*GormSequenceCounter)(nil)

func (c *GormSequenceCounter) NextSequence(ctx context.Context, dateKey string) (int, error) {
	if dateKey == "" {
		return 0, errs.NewValueIsRequiredError("dateKey")
	}

	var value int
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed, err := c.seed(ctx, tx, dateKey)
		if err != nil {
			return err
		}
		return tx.Raw(upsertSequence, dateKey, seed+1, c.clock.Now().UTC()).Scan(&value).Error
	})
	if err != nil {
		return 0, fmt.Errorf("next sequence for %s: %w", dateKey, err)
	}
	return value, nil
}

// seed returns the last sequence already used on dateKey when no counter row
// exists yet, and 0 otherwise.
func (c *GormSequenceCounter) seed(ctx context.Context, tx *gorm.DB, dateKey string) (int, error) {
	var rows int64
	if err := tx.Model(&SequenceDTO{}).Where("date_key = ?", dateKey).Count(&rows).Error; err != nil {
		return 0, err
	}
	if rows > 0 {
		return 0, nil
	}

	last, ok, err := orderrepo.NewGormOrderRepository(tx, nil, c.clock, nil).LastNumberForDate(ctx, dateKey)
	if err != nil || !ok {
		return 0, err
	}
	return last.Sequence(), nil
}

// Prune deletes counters for dates before beforeKey (YYYYMMDD) and returns how
// many were removed.
func (c *GormSequenceCounter) Prune(ctx context.Context, beforeKey string) (int64, error) {
	if beforeKey == "" {
		return 0, errs.NewValueIsRequiredError("beforeKey")
	}
	result := c.db.WithContext(ctx).Where("date_key < ?", beforeKey).Delete(&SequenceDTO{})
	return result.RowsAffected, result.Error
}
