package payment

import (
	"context"
	"errors"
)

var (
	ErrInvalidInitialization = errors.New("payment: invalid initialization")
	ErrUnsupportedCurrency   = errors.New("payment: unsupported currency")
	ErrMissingMetadata       = errors.New("payment: missing required metadata")
	ErrCollaboratorFailure   = errors.New("payment: collaborator failure")
)

// Kind maps an error to a low-cardinality label for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrInvalidInitialization):
		return "invalid_initialization"

	case errors.Is(err, ErrUnsupportedCurrency):
		return "unsupported_currency"

	case errors.Is(err, ErrMissingMetadata):
		return "missing_metadata"

	case errors.Is(err, ErrCollaboratorFailure):
		return "collaborator_failure"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	default:
		return "internal"
	}
}

// Retryable reports whether a new attempt with the same initialization could
// succeed. Only transient collaborator failures qualify; business-rule
// violations never do.
func Retryable(err error) bool {
	return errors.Is(err, ErrCollaboratorFailure) ||
		errors.Is(err, context.DeadlineExceeded)
}
