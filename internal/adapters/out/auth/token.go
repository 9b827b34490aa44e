package auth

import (
	"errors"
	"fmt"
	"time"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/staff"
	"yuandi/internal/core/ports"
	"yuandi/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTokenTTL = 12 * time.Hour
	DefaultIssuer   = "yuandi"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims identify a staff member. Subject holds the user ID.
type Claims struct {
	Email string     `json:"email"`
	Role  staff.Role `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller extracted from a valid token.
type Principal struct {
	UserID kernel.UUID
	Email  string
	Role   staff.Role
}

type JWTManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	clock  kernel.Clock
}

func NewJWTManager(secret string, ttl time.Duration, clock kernel.Clock) (*JWTManager, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwtSecret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: DefaultIssuer,
		clock:  clock,
	}, nil
}

var _ ports.TokenIssuer = (*JWTManager)(nil)

func (m *JWTManager) Issue(user *staff.User) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, errs.NewValueIsRequiredError("user")
	}

	now := m.clock.Now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		Email: user.Email(),
		Role:  user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID().String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Parse verifies signature, issuer and expiry and returns the caller.
func (m *JWTManager) Parse(raw string) (Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	role, err := staff.ParseRole(string(claims.Role))
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return Principal{UserID: id, Email: claims.Email, Role: role}, nil
}
