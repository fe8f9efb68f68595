package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	domevent "github.com/payforge/checkout/internal/domain/event"
)

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func TestBusDeliversToSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	received := make(chan domevent.Event, 1)
	bus.Subscribe("payment.request_prepared", func(_ context.Context, e domevent.Event) error {
		received <- e
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	if err := bus.Publish(ctx, testEvent{name: "payment.request_prepared"}); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	select {
	case e := <-received:
		if e.EventName() != "payment.request_prepared" {
			t.Fatalf("unexpected event %q", e.EventName())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestBusFansOutToAllHandlers(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		bus.Subscribe("payment.request_failed", func(context.Context, domevent.Event) error {
			wg.Done()
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	if err := bus.Publish(ctx, testEvent{name: "payment.request_failed"}); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fanout")
	}
}

func TestBusDropsEventsWithoutSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	if err := bus.Publish(ctx, testEvent{name: "nobody.listens"}); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}
}

func TestBusRecoversFromPanickingHandler(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	survived := make(chan struct{}, 1)
	bus.Subscribe("boom", func(context.Context, domevent.Event) error {
		panic("handler exploded")
	})
	bus.Subscribe("after", func(context.Context, domevent.Event) error {
		survived <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	if err := bus.Publish(ctx, testEvent{name: "boom"}); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}
	if err := bus.Publish(ctx, testEvent{name: "after"}); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	select {
	case <-survived:
	case <-time.After(2 * time.Second):
		t.Fatal("bus did not survive a panicking handler")
	}
}
