package memory

import (
	"context"
	"sync"

	domain "github.com/payforge/checkout/internal/domain/payment"
)

// CurrencySupport is an in-memory stand-in for the remote currency-support
// lookup. Merchants without an explicit entry fall back to the default set.
type CurrencySupport struct {
	mu         sync.RWMutex
	defaults   map[domain.Currency]struct{}
	byMerchant map[string]map[domain.Currency]struct{}
}

func NewCurrencySupport(defaults ...domain.Currency) *CurrencySupport {
	s := &CurrencySupport{
		defaults:   make(map[domain.Currency]struct{}, len(defaults)),
		byMerchant: make(map[string]map[domain.Currency]struct{}),
	}
	for _, c := range defaults {
		s.defaults[c] = struct{}{}
	}
	return s
}

// Allow replaces the supported set for a single merchant.
func (s *CurrencySupport) Allow(merchantID string, currencies ...domain.Currency) {
	set := make(map[domain.Currency]struct{}, len(currencies))
	for _, c := range currencies {
		set[c] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byMerchant[merchantID] = set
}

func (s *CurrencySupport) Supported(ctx context.Context, merchantID string, currency domain.Currency) (bool, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	if set, ok := s.byMerchant[merchantID]; ok {
		_, supported := set[currency]
		return supported, nil
	}
	_, supported := s.defaults[currency]
	return supported, nil
}
