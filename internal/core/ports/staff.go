package ports

import (
	"context"
	"time"

	"yuandi/internal/core/domain/model/staff"
)

type UserRepository interface {
	Add(ctx context.Context, user *staff.User) error

	// GetByEmail matches the normalized address, or errs.ObjectNotFoundError.
	GetByEmail(ctx context.Context, email string) (*staff.User, error)
}

type PasswordVerifier interface {
	Verify(hash, password string) error
}

type TokenIssuer interface {
	Issue(user *staff.User) (token string, expiresAt time.Time, err error)
}
