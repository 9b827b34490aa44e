package auth_test

import (
	"testing"
	"time"

	"yuandi/internal/adapters/out/auth"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/domain/model/staff"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)

	hash, err := hasher.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	require.NoError(t, hasher.Verify(hash, "s3cret!"))
	require.ErrorIs(t, hasher.Verify(hash, "wrong"), auth.ErrPasswordMismatch)
	require.Error(t, hasher.Verify("not-a-hash", "s3cret!"))

	_, err = hasher.Hash("")
	require.Error(t, err)
}

func newUser(t *testing.T, role staff.Role) *staff.User {
	t.Helper()
	u, err := staff.NewUser(kernel.NewUUID(), "ops@yuandi.kr", "Ops", "hash", role, true)
	require.NoError(t, err)
	return u
}

func TestJWTManager(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should round trip the principal", func(t *testing.T) {
		clock := &kernel.FixedClock{At: now}
		manager, err := auth.NewJWTManager("secret", time.Hour, clock)
		require.NoError(t, err)
		user := newUser(t, staff.RoleShipManager)

		token, expiresAt, err := manager.Issue(user)
		require.NoError(t, err)
		assert.Equal(t, now.Add(time.Hour), expiresAt)

		principal, err := manager.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID(), principal.UserID)
		assert.Equal(t, staff.RoleShipManager, principal.Role)
		assert.Equal(t, "ops@yuandi.kr", principal.Email)
	})

	t.Run("should reject expired token", func(t *testing.T) {
		clock := &kernel.FixedClock{At: now}
		manager, err := auth.NewJWTManager("secret", time.Hour, clock)
		require.NoError(t, err)
		token, _, err := manager.Issue(newUser(t, staff.RoleAdmin))
		require.NoError(t, err)

		clock.Advance(2 * time.Hour)
		_, err = manager.Parse(token)

		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("should reject token signed with another secret", func(t *testing.T) {
		clock := &kernel.FixedClock{At: now}
		issuer, err := auth.NewJWTManager("one", time.Hour, clock)
		require.NoError(t, err)
		verifier, err := auth.NewJWTManager("two", time.Hour, clock)
		require.NoError(t, err)
		token, _, err := issuer.Issue(newUser(t, staff.RoleAdmin))
		require.NoError(t, err)

		_, err = verifier.Parse(token)

		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("should reject unknown role and none algorithm", func(t *testing.T) {
		clock := &kernel.FixedClock{At: now}
		manager, err := auth.NewJWTManager("secret", time.Hour, clock)
		require.NoError(t, err)

		claims := auth.Claims{
			Role: "superuser",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   kernel.NewUUID().String(),
				Issuer:    auth.DefaultIssuer,
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = manager.Parse(badRole)
		require.ErrorIs(t, err, auth.ErrInvalidToken)

		claims.Role = staff.RoleAdmin
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = manager.Parse(unsigned)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("should require a secret", func(t *testing.T) {
		_, err := auth.NewJWTManager("", time.Hour, nil)
		require.Error(t, err)
	})
}
