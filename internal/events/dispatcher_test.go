package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, updated int
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		created++
		return nil
	})
	d.Subscribe(EventTicketUpdated, func(_ context.Context, _ Event) error {
		updated++
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventTicketCreated})
	_ = d.Publish(context.Background(), Event{Type: EventTicketCreated})

	if created != 2 || updated != 0 {
		t.Fatalf("created=%d updated=%d", created, updated)
	}
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !reached {
		t.Fatal("handler after failing one not invoked")
	}
}
