// Package staff models the back-office users who manage orders.
package staff

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/pkg/errs"
)

// Role controls which order operations a user may perform.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleOrderManager Role = "order_manager"
	RoleShipManager  Role = "ship_manager"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleOrderManager, RoleShipManager:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a staff role", s))
	}
}

func (r Role) String() string {
	return string(r)
}

// User is a staff account. The password is only ever held as a hash.
type User struct {
	id           kernel.UUID
	email        string
	name         string
	passwordHash string
	role         Role
	active       bool
}

func NewUser(id kernel.UUID, email, name, passwordHash string, role Role, active bool) (*User, error) {
	u := &User{
		id:           id,
		email:        NormalizeEmail(email),
		name:         strings.TrimSpace(name),
		passwordHash: passwordHash,
		role:         role,
		active:       active,
	}

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if _, err := mail.ParseAddress(u.email); err != nil || u.email == "" {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email)))
	}
	if passwordHash == "" {
		errList = append(errList, errs.NewValueIsRequiredError("passwordHash"))
	}
	if _, err := ParseRole(string(role)); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail lowercases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Email() string { return u.email }
func (u *User) Name() string { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role { return u.role }
func (u *User) IsActive() bool { return u.active }

// HasAnyRole reports whether the user holds one of roles. Admins hold all.
func (u *User) HasAnyRole(roles ...Role) bool {
	return RoleAllowed(u.role, roles...)
}

// RoleAllowed reports whether role satisfies one of the required roles.
func RoleAllowed(role Role, required ...Role) bool {
	if role == RoleAdmin {
		return true
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}
