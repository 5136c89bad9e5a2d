package widgetspec

import (
	"testing"
	"time"
)

func TestSnapshotBroadcasterFanOut(t *testing.T) {
	broadcast := NewSnapshotBroadcaster()
	events, cancel := broadcast.Subscribe()
	defer cancel()

	at := utcInstant(9, 0)
	sink := broadcast.SnapshotSink("widget-1")
	sink(Snapshot{Result: RenderResult{State: StateOK}, At: at})

	select {
	case event := <-events:
		if event.WidgetID != "widget-1" {
			t.Fatalf("unexpected widget id %q", event.WidgetID)
		}
		if event.Result.State != StateOK {
			t.Fatalf("unexpected state %s", event.Result.State)
		}
		if !event.At.Equal(at) {
			t.Fatalf("unexpected instant %v", event.At)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast event")
	}
}

func TestSnapshotBroadcasterDropsWhenSubscriberIsFull(t *testing.T) {
	broadcast := NewSnapshotBroadcaster()
	events, cancel := broadcast.Subscribe()
	defer cancel()

	sink := broadcast.SnapshotSink("widget-1")
	done := make(chan struct{})
	go func() {
		// More sends than the subscriber buffer holds; the sink must
		// drop the overflow instead of blocking the tick.
		for i := 0; i < 50; i++ {
			sink(Snapshot{At: utcInstant(9, 0)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sink blocked on a slow subscriber")
	}
	if len(events) == 0 {
		t.Fatal("expected at least one buffered event")
	}
}

func TestSnapshotBroadcasterCancelClosesChannel(t *testing.T) {
	broadcast := NewSnapshotBroadcaster()
	events, cancel := broadcast.Subscribe()
	cancel()

	if _, ok := <-events; ok {
		t.Fatal("expected closed channel after cancel")
	}
	// A second cancel is a no-op.
	cancel()

	// Sinks keep working with no subscribers.
	broadcast.SnapshotSink("widget-1")(Snapshot{At: utcInstant(9, 0)})
}

func TestSnapshotBroadcasterMultipleSubscribers(t *testing.T) {
	broadcast := NewSnapshotBroadcaster()
	first, cancelFirst := broadcast.Subscribe()
	second, cancelSecond := broadcast.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	broadcast.SnapshotSink("widget-1")(Snapshot{At: utcInstant(9, 0)})

	for i, events := range []<-chan SnapshotEvent{first, second} {
		select {
		case event := <-events:
			if event.WidgetID != "widget-1" {
				t.Fatalf("subscriber %d: unexpected widget %q", i, event.WidgetID)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: no event", i)
		}
	}
}
