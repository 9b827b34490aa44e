package http

import (
	"errors"
	"net/http"

	"yuandi/internal/core/application/usecases/commands"
	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var errBadRequestBody = errors.New("invalid request body")

// writeError maps an application error onto a status code and JSON body.
// Unknown errors are logged and reported as 500 without details.
func (s *Server) writeError(c echo.Context, err error) error {
	var (
		validationErr *order.ValidationError
		transitionErr *order.InvalidTransitionError
		fieldErrs     validator.ValidationErrors
		requiredErr   *errs.ValueIsRequiredError
		invalidErr    *errs.ValueIsInvalidError
		outOfRangeErr *errs.ValueIsOutOfRangeError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Errors:  validationErr.Messages,
		})
	case errors.As(err, &fieldErrs):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Errors:  validationMessages(err),
		})
	case errors.Is(err, errBadRequestBody):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	case errors.As(err, &transitionErr):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: transitionErr.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Not found",
		})
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Already exists",
		})
	case errors.Is(err, commands.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	case errors.Is(err, commands.ErrUserIsInactive):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Account is disabled",
		})
	case errors.As(err, &requiredErr), errors.As(err, &invalidErr), errors.As(err, &outOfRangeErr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Errors:  []string{err.Error()},
		})
	default:
		s.logger.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
