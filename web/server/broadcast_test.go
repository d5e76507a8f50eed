package server

import (
	"testing"
)

func drain(c *client) []Event {
	var events []Event
	for {
		select {
		case e := <-c.events:
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestBroadcaster_OpenSendsConnected(t *testing.T) {
	b := NewBroadcaster()
	b.Open(1)

	events := drain(b.subscribe(1))
	if len(events) != 1 || events[0].Data != "connected" || events[0].Name != "" {
		t.Errorf("Expected a single connected event, got %+v", events)
	}
	if b.Len() != 1 {
		t.Errorf("Expected 1 client, got %d", b.Len())
	}
}

func TestBroadcaster_OpenIsIdempotent(t *testing.T) {
	b := NewBroadcaster()
	first := b.subscribe(3)
	b.Open(3)

	if b.subscribe(3) != first {
		t.Error("Opening an existing id should keep its stream")
	}
	if got := drain(first); len(got) != 1 {
		t.Errorf("Expected one connected event, got %+v", got)
	}
}

func TestBroadcaster_SendToUnknownClient(t *testing.T) {
	b := NewBroadcaster()

	if b.Send(42, Event{Data: "1000"}) {
		t.Error("Send to unknown client should report false")
	}
	if b.Len() != 0 {
		t.Errorf("Send should not create clients, got %d", b.Len())
	}
}

func TestBroadcaster_FullBufferDropsOldest(t *testing.T) {
	b := NewBroadcaster()
	c := b.subscribe(1)

	// The connected event plus this many milestones overflow the buffer by ten
	for i := 1; i <= clientBufferSize+9; i++ {
		if !b.Send(1, Event{Data: string(rune('a' + i%26))}) {
			t.Fatalf("Send %d failed", i)
		}
	}

	events := drain(c)
	if len(events) != clientBufferSize {
		t.Fatalf("Expected %d buffered events, got %d", clientBufferSize, len(events))
	}
	if events[0].Data == "connected" {
		t.Error("Oldest event should have been dropped")
	}
	last := string(rune('a' + (clientBufferSize+9)%26))
	if events[len(events)-1].Data != last {
		t.Errorf("Newest event should be kept, got %q want %q", events[len(events)-1].Data, last)
	}
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster()
	c := b.subscribe(7)
	b.Send(7, Event{Data: "1000"})

	b.Close(7)

	select {
	case <-c.done:
	default:
		t.Fatal("Close should signal done")
	}
	if b.Len() != 0 {
		t.Errorf("Expected no clients after close, got %d", b.Len())
	}
	// Buffered events survive the close
	if events := drain(c); len(events) != 2 {
		t.Errorf("Expected connected and milestone events, got %+v", events)
	}

	// Closing twice is harmless
	b.Close(7)
}

func TestBroadcaster_ReleaseOnlyOwnClient(t *testing.T) {
	b := NewBroadcaster()
	old := b.subscribe(9)
	b.Close(9)
	current := b.subscribe(9)

	b.release(9, old)
	if b.Len() != 1 {
		t.Error("Releasing a stale client must not remove the current one")
	}

	b.release(9, current)
	if b.Len() != 0 {
		t.Error("Releasing the current client should remove it")
	}
}
