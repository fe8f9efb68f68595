package orchestrator

import (
	"context"

	"github.com/payforge/checkout/internal/domain/payment"
	"github.com/payforge/checkout/internal/pkg/result"
)

// Repository is the outbound port producing transport-ready requests from
// initializations. The builder use case satisfies it; tests substitute their
// own implementations to script outcomes and timing.
type Repository interface {
	BuildPaymentRequest(ctx context.Context, init payment.Initialization) result.Result[payment.Request]
}
