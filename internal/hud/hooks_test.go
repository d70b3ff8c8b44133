package hud

import (
	"testing"

	"tokenhud/internal/scene"
	"tokenhud/pkg/realtime"
)

func TestBus_SelectionOpensAndToggleCloses(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)

	bus.Publish(realtime.Event{Kind: scene.EventTokenSelected, TokenID: f.token.ID, UserID: testUser})
	if !f.hud.Open() {
		t.Fatal("selection event should open the HUD")
	}

	// Re-selecting the tracked token is the toggle-to-close gesture.
	bus.Publish(realtime.Event{Kind: scene.EventTokenSelected, TokenID: f.token.ID, UserID: testUser})
	if f.hud.Open() {
		t.Error("re-selecting the tracked token should close the HUD")
	}
}

func TestBus_IgnoresOtherUsersGestures(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)

	bus.Publish(realtime.Event{Kind: scene.EventTokenSelected, TokenID: f.token.ID, UserID: "someone-else"})
	if f.hud.Open() {
		t.Error("another user's selection must not open this session's HUD")
	}

	f.open(t)
	bus.Publish(realtime.Event{Kind: scene.EventCanvasClick, UserID: "someone-else"})
	if !f.hud.Open() {
		t.Error("another user's canvas click must not close this session's HUD")
	}
}

func TestBus_SelectionClearedCloses(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)
	f.open(t)

	bus.Publish(realtime.Event{Kind: scene.EventSelectionCleared, UserID: testUser})
	if f.hud.Open() {
		t.Error("clearing the selection should close the HUD")
	}
}

func TestBus_DragStartClosesTrackedOnly(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)
	other := f.scene.AddToken(&scene.Token{
		Name: "Other", ActorID: f.actor.ID,
		Category: scene.CategoryCharacter, Owners: []string{testUser},
	})
	f.open(t)

	bus.Publish(realtime.Event{Kind: scene.EventTokenDragStart, TokenID: other.ID, UserID: testUser})
	if !f.hud.Open() {
		t.Error("dragging an untracked token must not close the HUD")
	}

	bus.Publish(realtime.Event{Kind: scene.EventTokenDragStart, TokenID: f.token.ID, UserID: testUser})
	if f.hud.Open() {
		t.Error("dragging the tracked token should close the HUD")
	}
}

func TestBus_SheetOpenedClosesRegardlessOfUser(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)
	f.open(t)

	bus.Publish(realtime.Event{Kind: scene.EventSheetOpened, ActorID: f.actor.ID, UserID: "someone-else"})
	if f.hud.Open() {
		t.Error("the full sheet opening over the tracked actor closes the HUD")
	}
}

func TestBus_SheetClosedRetracksToken(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)
	f.open(t)

	f.scene.SetSheetOpen(f.actor.ID, true)
	bus.Publish(realtime.Event{Kind: scene.EventSheetOpened, ActorID: f.actor.ID})
	if f.hud.Open() {
		t.Fatal("sheet open should close the HUD")
	}

	f.scene.SetSheetOpen(f.actor.ID, false)
	bus.Publish(realtime.Event{
		Kind: scene.EventSheetClosed, TokenID: f.token.ID, ActorID: f.actor.ID, UserID: testUser,
	})
	if id, ok := f.hud.Tracked(); !ok || id != f.token.ID {
		t.Errorf("Tracked() = %q, %v after sheet close; want %q, true", id, ok, f.token.ID)
	}
}

func TestBus_SheetClosedByOtherUserIgnored(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)

	f.scene.SetSheetOpen(f.actor.ID, false)
	bus.Publish(realtime.Event{
		Kind: scene.EventSheetClosed, TokenID: f.token.ID, ActorID: f.actor.ID, UserID: "someone-else",
	})
	if f.hud.Open() {
		t.Error("another user's sheet close must not open this session's HUD")
	}
}

func TestBus_HUDClaimByOtherCloses(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)
	f.open(t)

	bus.Publish(realtime.Event{Kind: scene.EventHUDClaimed, TokenID: f.token.ID, UserID: testUser})
	if !f.hud.Open() {
		t.Error("a user's own claim must not close their HUD")
	}

	bus.Publish(realtime.Event{Kind: scene.EventHUDClaimed, TokenID: f.token.ID, UserID: "someone-else"})
	if f.hud.Open() {
		t.Error("another user's persistent HUD claim on the tracked token closes the HUD")
	}
}

func TestBus_ActorUpdatedRerenders(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)
	f.open(t)
	f.pusher.reset()

	// Unchanged markup is skipped; change the actor so the render differs.
	f.renderer.setPanel(func(rc *RenderContext) (string, error) {
		return `<div data-token-id="` + rc.TokenID + `" data-v="2"></div>`, nil
	})
	bus.Publish(realtime.Event{Kind: scene.EventActorUpdated, ActorID: f.actor.ID})

	if got := len(f.pusher.byType(FrameHUD)); got != 1 {
		t.Errorf("actor update pushed %d hud frames, want 1", got)
	}

	f.pusher.reset()
	bus.Publish(realtime.Event{Kind: scene.EventActorUpdated, ActorID: "unrelated-actor"})
	if got := len(f.pusher.byType(FrameHUD)); got != 0 {
		t.Errorf("unrelated actor update pushed %d hud frames, want 0", got)
	}
}

func TestShutdown_CancelsSubscriptions(t *testing.T) {
	bus := realtime.NewBus()
	f := newFixture(t, bus)
	f.open(t)

	f.hud.Shutdown()
	if f.hud.Open() {
		t.Fatal("shutdown should close the HUD")
	}

	bus.Publish(realtime.Event{Kind: scene.EventTokenSelected, TokenID: f.token.ID, UserID: testUser})
	if f.hud.Open() {
		t.Error("events after shutdown must not reach the HUD")
	}
}
