package commands

import (
	"context"
	"errors"
	"time"

	"yuandi/internal/core/domain/model/staff"
	"yuandi/internal/core/ports"
	"yuandi/internal/pkg/errs"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserIsInactive     = errors.New("user is inactive")
)

// LoginResult is the issued token and the user it belongs to.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *staff.User
}

// LoginCommandHandler verifies staff credentials and issues an access token.
// An unknown email and a wrong password both fail with ErrInvalidCredentials.
type LoginCommandHandler struct {
	users    ports.UserRepository
	verifier ports.PasswordVerifier
	issuer   ports.TokenIssuer
}

func NewLoginCommandHandler(
	users ports.UserRepository,
	verifier ports.PasswordVerifier,
	issuer ports.TokenIssuer,
) LoginCommandHandler {
	return LoginCommandHandler{
		users:    users,
		verifier: verifier,
		issuer:   issuer,
	}
}

func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	user, err := h.users.GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if err = h.verifier.Verify(user.PasswordHash(), cmd.Password()); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if !user.IsActive() {
		return LoginResult{}, ErrUserIsInactive
	}

	token, expiresAt, err := h.issuer.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
