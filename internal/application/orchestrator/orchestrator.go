package orchestrator

import (
	"context"
	"sync"

	domevent "github.com/payforge/checkout/internal/domain/event"
	"github.com/payforge/checkout/internal/domain/payment"
	"github.com/payforge/checkout/internal/observability"
)

const componentOrchestrator = "payment_orchestrator"

// Listener receives every state transition, in transition order. Callbacks
// run synchronously on the transitioning goroutine and must not call back
// into the orchestrator.
type Listener func(State)

// Orchestrator mediates between UI triggers and the request-building
// repository. It holds exactly one State at a time; a Start call supersedes
// any build still in flight, whose eventual result is cancelled and dropped.
type Orchestrator struct {
	repo      Repository
	publisher domevent.Publisher
	tel       observability.Telemetry
	log       observability.Logger

	mu             sync.Mutex
	state          State
	attempt        uint64
	cancelInFlight context.CancelFunc
	listeners      map[int]Listener
	nextListener   int
}

func New(repo Repository, publisher domevent.Publisher, tel observability.Telemetry) *Orchestrator {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	return &Orchestrator{
		repo:      repo,
		publisher: publisher,
		tel:       tel,
		log: tel.Logger().With(
			observability.F("component", componentOrchestrator),
		),
		state:     State{Phase: PhaseIdle},
		listeners: make(map[int]Listener),
	}
}

// CurrentState returns the state as of the call.
func (o *Orchestrator) CurrentState() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe registers a listener for state transitions and returns a cancel
// function that unregisters it.
func (o *Orchestrator) Subscribe(fn Listener) (cancel func()) {
	o.mu.Lock()
	id := o.nextListener
	o.nextListener++
	o.listeners[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// Start begins a new build attempt and transitions to Building immediately.
// Any prior in-flight build is cancelled; if its result still arrives it is
// compared against the attempt token and discarded. The returned token
// identifies this attempt in subsequent states.
func (o *Orchestrator) Start(ctx context.Context, init payment.Initialization) uint64 {
	o.mu.Lock()
	o.attempt++
	attempt := o.attempt

	if o.cancelInFlight != nil {
		o.cancelInFlight()
	}
	// The build outlives the trigger's request context.
	buildCtx, cancelBuild := context.WithCancel(context.WithoutCancel(ctx))
	o.cancelInFlight = cancelBuild

	o.setStateLocked(State{Phase: PhaseBuilding, Attempt: attempt})
	o.mu.Unlock()

	o.log.Info("build_started",
		observability.F("attempt", attempt),
		observability.F("currency", init.Currency().String()),
	)

	go o.build(buildCtx, cancelBuild, attempt, init)
	return attempt
}

func (o *Orchestrator) build(ctx context.Context, cancel context.CancelFunc, attempt uint64, init payment.Initialization) {
	defer cancel()

	res := o.repo.BuildPaymentRequest(ctx, init)

	o.mu.Lock()
	if attempt != o.attempt {
		o.mu.Unlock()
		o.tel.Counter(observability.MStaleResultsDropped).Add(1)
		o.log.Debug("stale_result_dropped",
			observability.F("attempt", attempt),
		)
		return
	}
	o.cancelInFlight = nil

	var st State
	if res.IsOk() {
		req := res.Value()
		st = State{Phase: PhaseReady, Attempt: attempt, Request: &req}
	} else {
		st = State{Phase: PhaseFailed, Attempt: attempt, Err: res.Err()}
	}
	o.setStateLocked(st)
	o.mu.Unlock()

	o.publish(ctx, st)
}

// setStateLocked replaces the state and pushes it to listeners. Callers hold
// o.mu, which is what keeps notifications in transition order.
func (o *Orchestrator) setStateLocked(st State) {
	o.state = st
	for _, fn := range o.listeners {
		fn(st)
	}
}

func (o *Orchestrator) publish(ctx context.Context, st State) {
	if o.publisher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var err error
	switch st.Phase {
	case PhaseReady:
		err = o.publisher.Publish(ctx, payment.NewRequestPreparedEvent(st.Attempt, *st.Request))
	case PhaseFailed:
		err = o.publisher.Publish(ctx, payment.NewRequestFailedEvent(st.Attempt, st.Err))
	default:
		return
	}
	if err != nil {
		o.log.Warn("state_event_publish_failed",
			observability.F("attempt", st.Attempt),
			observability.F("phase", string(st.Phase)),
			observability.F("error", err.Error()),
		)
	}
}
