package orchestrator

import "github.com/payforge/checkout/internal/domain/payment"

// Phase enumerates where the orchestrator sits in its lifecycle.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseBuilding Phase = "building"
	PhaseReady    Phase = "ready"
	PhaseFailed   Phase = "failed"
)

// State is the single observable value the orchestrator holds. Request is
// set only in PhaseReady, Err only in PhaseFailed; Attempt identifies which
// Start call produced the state.
type State struct {
	Phase   Phase
	Attempt uint64
	Request *payment.Request
	Err     error
}

// Terminal reports whether a new Start call is needed to make progress.
func (s State) Terminal() bool {
	return s.Phase == PhaseReady || s.Phase == PhaseFailed
}
