// Package userrepo stores staff accounts.
package userrepo

import (
	"context"
	"errors"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/staff"
	"yuandi/internal/core/ports"
	"yuandi/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type StaffUserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:254;not null;uniqueIndex"`
	Name         string    `gorm:"size:100"`
	PasswordHash string    `gorm:"size:100;not null"`
	Role         string    `gorm:"size:32;not null"`
	Active       bool      `gorm:"not null;default:true"`
}

func (StaffUserDTO) TableName() string {
	return "staff_users"
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

var _ ports.UserRepository = (*GormUserRepository)(nil)

func (r *GormUserRepository) Add(ctx context.Context, user *staff.User) error {
	if user == nil {
		return errs.NewValueIsRequiredError("user")
	}
	dto := StaffUserDTO{
		ID:           user.ID().Bytes(),
		Email:        user.Email(),
		Name:         user.Name(),
		PasswordHash: user.PasswordHash(),
		Role:         user.Role().String(),
		Active:       user.IsActive(),
	}
	// Select keeps GORM from substituting the column default for Active=false.
	err := r.db.WithContext(ctx).Select("*").Create(&dto).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
			return errs.NewObjectAlreadyExistsErrorWithCause("email", user.Email(), err)
		}
		return err
	}
	return nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*staff.User, error) {
	normalized := staff.NormalizeEmail(email)

	var dto StaffUserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("email", normalized)
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return staff.NewUser(id, dto.Email, dto.Name, dto.PasswordHash, staff.Role(dto.Role), dto.Active)
}
