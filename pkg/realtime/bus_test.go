package realtime

import (
	"testing"
)

func TestNewBus(t *testing.T) {
	b := NewBus()
	if b == nil {
		t.Fatal("NewBus returned nil")
	}
}

func TestBus_PublishDeliversToSubscriber(t *testing.T) {
	b := NewBus()
	var got []Event
	cancel := b.Subscribe("token-selected", func(e Event) { got = append(got, e) })
	defer cancel()

	b.Publish(Event{Kind: "token-selected", TokenID: "t1"})
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].TokenID != "t1" {
		t.Errorf("got TokenID %q, want t1", got[0].TokenID)
	}
}

func TestBus_KindsAreIndependent(t *testing.T) {
	b := NewBus()
	selected := 0
	moved := 0
	defer b.Subscribe("token-selected", func(Event) { selected++ })()
	defer b.Subscribe("canvas-transform", func(Event) { moved++ })()

	b.Publish(Event{Kind: "canvas-transform"})
	if selected != 0 {
		t.Errorf("selected handler ran %d times, want 0", selected)
	}
	if moved != 1 {
		t.Errorf("moved handler ran %d times, want 1", moved)
	}
}

func TestBus_PublishDeliversToMultipleSubscribers(t *testing.T) {
	b := NewBus()
	first := 0
	second := 0
	defer b.Subscribe("chat-message", func(Event) { first++ })()
	defer b.Subscribe("chat-message", func(Event) { second++ })()

	b.Publish(Event{Kind: "chat-message"})
	if first != 1 || second != 1 {
		t.Errorf("handlers ran %d and %d times, want 1 and 1", first, second)
	}
}

func TestBus_CancelRemovesHandler(t *testing.T) {
	b := NewBus()
	calls := 0
	cancel := b.Subscribe("spell-cast", func(Event) { calls++ })
	cancel()
	cancel() // canceling twice is safe

	b.Publish(Event{Kind: "spell-cast"})
	if calls != 0 {
		t.Errorf("handler ran %d times after cancel, want 0", calls)
	}
}

func TestBus_HandlerMayPublish(t *testing.T) {
	b := NewBus()
	closed := 0
	defer b.Subscribe("hud-closed", func(Event) { closed++ })()
	defer b.Subscribe("canvas-click", func(Event) {
		b.Publish(Event{Kind: "hud-closed"})
	})()

	b.Publish(Event{Kind: "canvas-click"})
	if closed != 1 {
		t.Errorf("nested publish delivered %d times, want 1", closed)
	}
}
