package payment

import "time"

// RequestPreparedEvent is emitted when a build attempt produced a
// transport-ready request. Downstream contexts (e.g. dispatch) react to it.
type RequestPreparedEvent struct {
	Attempt    uint64
	Request    Request
	OccurredAt time.Time
}

func (RequestPreparedEvent) EventName() string { return "payment.request_prepared" }

func NewRequestPreparedEvent(attempt uint64, req Request) RequestPreparedEvent {
	return RequestPreparedEvent{
		Attempt:    attempt,
		Request:    req,
		OccurredAt: time.Now().UTC(),
	}
}

// RequestFailedEvent is emitted when a build attempt resolved with a failure.
type RequestFailedEvent struct {
	Attempt    uint64
	Reason     string
	OccurredAt time.Time
}

func (RequestFailedEvent) EventName() string { return "payment.request_failed" }

func NewRequestFailedEvent(attempt uint64, err error) RequestFailedEvent {
	reason := "unknown"
	if err != nil {
		reason = Kind(err)
	}
	return RequestFailedEvent{
		Attempt:    attempt,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}
