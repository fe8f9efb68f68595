package builder

import (
	"context"

	"github.com/payforge/checkout/internal/domain/payment"
)

// CurrencySupport is an outbound port for the read-only collaborator that
// knows which currencies a merchant may charge in. It belongs to the
// application layer to express use-case dependencies.
type CurrencySupport interface {
	Supported(ctx context.Context, merchantID string, currency payment.Currency) (bool, error)
}

// IDGenerator produces identifiers for freshly built requests.
type IDGenerator interface {
	NewID() string
}
