package dispatch

import (
	"context"

	"github.com/payforge/checkout/internal/domain/payment"
)

// Submitter is the outbound port for the transport collaborator that carries
// a prepared request towards a payment provider.
type Submitter interface {
	Submit(ctx context.Context, req payment.Request) error
}
