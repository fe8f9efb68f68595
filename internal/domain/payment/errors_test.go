package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("wrapped: %w", ErrUnsupportedCurrency)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "invalid_initialization", err: ErrInvalidInitialization, want: "invalid_initialization"},
		{name: "unsupported_currency", err: ErrUnsupportedCurrency, want: "unsupported_currency"},
		{name: "unsupported_currency_wrapped", err: wrapped, want: "unsupported_currency"},
		{name: "missing_metadata", err: ErrMissingMetadata, want: "missing_metadata"},
		{name: "collaborator_failure", err: ErrCollaboratorFailure, want: "collaborator_failure"},
		{name: "deadline", err: context.DeadlineExceeded, want: "timeout"},
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "unknown", err: errors.New("unknown"), want: "internal"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Kind(tt.err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	if Retryable(ErrUnsupportedCurrency) {
		t.Fatal("business-rule failures must not be retry-eligible")
	}
	if Retryable(ErrMissingMetadata) {
		t.Fatal("business-rule failures must not be retry-eligible")
	}
	if !Retryable(fmt.Errorf("lookup: %w", ErrCollaboratorFailure)) {
		t.Fatal("collaborator failures are transient and retry-eligible")
	}
	if !Retryable(context.DeadlineExceeded) {
		t.Fatal("timeouts are retry-eligible")
	}
}
