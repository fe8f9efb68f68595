package memory

import (
	"context"
	"sync"

	domain "github.com/payforge/checkout/internal/domain/payment"
)

// Submitter records submitted requests in memory. It stands in for the
// transport collaborator that would carry requests to a payment provider.
type Submitter struct {
	mu        sync.RWMutex
	submitted []domain.Request
}

func NewSubmitter() *Submitter {
	return &Submitter{}
}

func (s *Submitter) Submit(ctx context.Context, req domain.Request) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = append(s.submitted, req)
	return nil
}

// Submitted returns a copy of everything submitted so far.
func (s *Submitter) Submitted() []domain.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Request(nil), s.submitted...)
}
