package order

import (
	"errors"
	"fmt"
	"strings"

	"yuandi/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order that bypassed NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

	// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError carries every violation found in an Input.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages []string) *ValidationError {
	copied := make([]string, len(messages))
	copy(copied, messages)
	return &ValidationError{Messages: copied}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: order input (%s)", errs.ErrValueIsInvalid, strings.Join(e.Messages, "; "))
}

func (e *ValidationError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// InvalidTransitionError reports an operation the current status forbids.
type InvalidTransitionError struct {
	From      Status
	Operation string
}

func NewInvalidTransitionError(from Status, operation string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Operation: operation}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order in %s status", ErrInvalidTransition, e.Operation, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
