package events

import (
	"testing"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus(4)
	a, cancelA := bus.Subscribe()
	b, cancelB := bus.Subscribe()
	defer cancelA()
	defer cancelB()

	evt := model.ChangeEvent{Kind: model.ChangeDeleted, EntryID: "e-1"}
	if got := bus.Publish(evt); got != 2 {
		t.Fatalf("delivered = %d, want 2", got)
	}

	for name, ch := range map[string]<-chan model.ChangeEvent{"a": a, "b": b} {
		select {
		case got := <-ch:
			if got.EntryID != "e-1" || got.Kind != model.ChangeDeleted {
				t.Errorf("subscriber %s got %+v", name, got)
			}
		default:
			t.Errorf("subscriber %s received nothing", name)
		}
	}
}

func TestBusPublishDropsWhenFull(t *testing.T) {
	bus := NewBus(1)
	ch, cancel := bus.Subscribe()
	defer cancel()

	if got := bus.Publish(model.ChangeEvent{EntryID: "first"}); got != 1 {
		t.Fatalf("first publish delivered = %d, want 1", got)
	}
	if got := bus.Publish(model.ChangeEvent{EntryID: "second"}); got != 0 {
		t.Fatalf("publish to full buffer delivered = %d, want 0", got)
	}

	got := <-ch
	if got.EntryID != "first" {
		t.Fatalf("buffered event = %+v, want first", got)
	}
}

func TestBusCancelStopsDelivery(t *testing.T) {
	bus := NewBus(2)
	ch, cancel := bus.Subscribe()

	cancel()
	cancel() // idempotent

	if got := bus.Publish(model.ChangeEvent{EntryID: "late"}); got != 0 {
		t.Fatalf("delivered after cancel = %d, want 0", got)
	}
	if _, open := <-ch; open {
		t.Fatal("channel should be closed after cancel")
	}
}

func TestBusClose(t *testing.T) {
	bus := NewBus(2)
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Close()
	if _, open := <-ch; open {
		t.Fatal("channel should be closed after bus Close")
	}

	late, lateCancel := bus.Subscribe()
	defer lateCancel()
	if _, open := <-late; open {
		t.Fatal("subscribe after Close should return a closed channel")
	}
	if got := bus.Publish(model.ChangeEvent{EntryID: "x"}); got != 0 {
		t.Fatalf("publish after Close delivered = %d, want 0", got)
	}
}
