package http

import (
	"net/http"
	"strings"
	"time"

	"yuandi/internal/adapters/out/auth"
	"yuandi/internal/core/domain/model/staff"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const principalKey = "principal"

// TokenParser validates a bearer token.
type TokenParser interface {
	Parse(raw string) (auth.Principal, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the caller in the context.
func Authenticate(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, raw, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			raw = strings.TrimSpace(raw)
			if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
				return unauthorized(c)
			}

			principal, err := tokens.Parse(raw)
			if err != nil {
				return unauthorized(c)
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// RequireRoles lets the request through when the caller holds one of roles.
// Admins always pass.
func RequireRoles(roles ...staff.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(principalKey).(auth.Principal)
			if !ok {
				return unauthorized(c)
			}
			if !staff.RoleAllowed(principal.Role, roles...) {
				return c.JSON(http.StatusForbidden, ErrorResponse{
					Code:    http.StatusForbidden,
					Message: "Insufficient role",
				})
			}
			return next(c)
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			event := logger.Info()
			switch {
			case res.Status >= http.StatusInternalServerError:
				event = logger.Error()
			case res.Status >= http.StatusBadRequest:
				event = logger.Warn()
			}

			event.
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", c.Path()).
				Str("uri", req.RequestURI).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP())
			if principal, ok := c.Get(principalKey).(auth.Principal); ok {
				event.Str("user_id", principal.UserID.String()).Str("role", principal.Role.String())
			}
			event.Msg("http request")

			return nil
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: "Unauthorized",
	})
}
