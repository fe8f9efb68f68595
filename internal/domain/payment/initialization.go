package payment

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Initialization is the raw, UI-supplied intent to start a payment. It is
// validated on construction and immutable afterwards; downstream code can
// rely on its invariants without re-checking them.
type Initialization struct {
	amount   decimal.Decimal
	currency Currency
	metadata map[string]string
}

// NewInitialization validates and captures the payment intent. The amount
// must be strictly positive and the currency must belong to the known set.
// The metadata map is copied so later mutation by the caller cannot leak in.
func NewInitialization(amount decimal.Decimal, currency Currency, metadata map[string]string) (Initialization, error) {
	if !amount.IsPositive() {
		return Initialization{}, fmt.Errorf("%w: amount must be greater than zero, got %s", ErrInvalidInitialization, amount)
	}
	if !currency.Known() {
		return Initialization{}, fmt.Errorf("%w: unknown currency %q", ErrInvalidInitialization, string(currency))
	}

	var meta map[string]string
	if len(metadata) > 0 {
		meta = make(map[string]string, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}

	return Initialization{
		amount:   amount,
		currency: currency,
		metadata: meta,
	}, nil
}

// Amount returns the major-unit amount.
func (i Initialization) Amount() decimal.Decimal { return i.amount }

// Currency returns the normalized currency code.
func (i Initialization) Currency() Currency { return i.currency }

// Metadata looks up a single metadata value.
func (i Initialization) Metadata(key string) (string, bool) {
	v, ok := i.metadata[key]
	return v, ok
}

// MetadataCopy returns a copy of all metadata entries.
func (i Initialization) MetadataCopy() map[string]string {
	if len(i.metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(i.metadata))
	for k, v := range i.metadata {
		out[k] = v
	}
	return out
}

// IsZero reports whether the value was never constructed through
// NewInitialization. A zero Initialization passed across a port boundary is
// a programming error, not a business failure.
func (i Initialization) IsZero() bool {
	return i.currency == "" && i.amount.IsZero() && i.metadata == nil
}
