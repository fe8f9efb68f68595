package dispatch

import (
	"context"

	domevent "github.com/payforge/checkout/internal/domain/event"
	"github.com/payforge/checkout/internal/domain/payment"
	"github.com/payforge/checkout/internal/observability"
	"github.com/payforge/checkout/internal/observability/logctx"
)

const dispatchWorker = "dispatch_worker"

// Worker forwards prepared requests to the transport collaborator as they
// are announced on the event bus.
type Worker struct {
	subscriber domevent.Subscriber
	submitter  Submitter
	tel        observability.Telemetry
	log        observability.Logger
}

func New(subscriber domevent.Subscriber, submitter Submitter, tel observability.Telemetry) *Worker {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	return &Worker{
		subscriber: subscriber,
		submitter:  submitter,
		tel:        tel,
		log: tel.Logger().With(
			observability.F("component", dispatchWorker),
		),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil || w.submitter == nil {
		return
	}
	w.subscriber.Subscribe(payment.RequestPreparedEvent{}.EventName(), w.handleRequestPrepared)
}

func (w *Worker) handleRequestPrepared(ctx context.Context, e domevent.Event) error {
	logger := logctx.FromOr(ctx, w.log).With(
		observability.F("event", e.EventName()),
	)

	evt, ok := e.(payment.RequestPreparedEvent)
	if !ok {
		return nil
	}

	err := w.submitter.Submit(ctx, evt.Request)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	w.tel.Counter(observability.MDispatchSubmissions).Add(1,
		observability.L("outcome", outcome),
	)
	if err != nil {
		logger.Warn("request_submission_failed",
			observability.F("request_id", evt.Request.ID),
			observability.F("error", err.Error()),
		)
		return err
	}

	logger.Info("request_submitted",
		observability.F("request_id", evt.Request.ID),
		observability.F("amount_minor", evt.Request.AmountMinor),
		observability.F("currency", evt.Request.Currency),
	)
	return nil
}
