package hud

import (
	"context"

	"tokenhud/internal/scene"
	"tokenhud/internal/settings"
	"tokenhud/pkg/realtime"
)

// subscribe installs the notification handlers that map external events onto
// state transitions. Gesture events from other users are ignored; shared
// events (actor updates, sheet opens, persistent HUD claims) apply to
// whichever session tracks the subject.
func (h *HUD) subscribe(bus *realtime.Bus) {
	mine := func(e realtime.Event) bool { return e.UserID == h.cfg.UserID }

	sub := func(kind realtime.EventKind, fn realtime.Handler) {
		h.cancels = append(h.cancels, bus.Subscribe(kind, fn))
	}

	sub(scene.EventTokenSelected, func(e realtime.Event) {
		if !mine(e) {
			return
		}
		// Clicking the already-tracked token is the toggle-to-close gesture.
		if id, ok := h.Tracked(); ok && id == e.TokenID {
			h.Close()
			return
		}
		token, _ := h.cfg.Scene.Token(e.TokenID)
		h.SetToken(context.Background(), token)
	})

	sub(scene.EventSelectionCleared, func(e realtime.Event) {
		if mine(e) {
			h.Close()
		}
	})

	sub(scene.EventCanvasTransform, func(e realtime.Event) {
		if !mine(e) {
			return
		}
		if tr, ok := e.Data.(CanvasTransform); ok {
			h.SetTransform(tr)
		}
	})

	sub(scene.EventCanvasClick, func(e realtime.Event) {
		if mine(e) {
			h.CanvasClick()
		}
	})

	sub(scene.EventTokenDragStart, func(e realtime.Event) {
		if !mine(e) {
			return
		}
		if id, ok := h.Tracked(); ok && id == e.TokenID {
			h.Close()
		}
	})

	sub(scene.EventSheetOpened, func(e realtime.Event) {
		h.mu.Lock()
		tracked := h.token != nil && h.token.ActorID == e.ActorID
		h.mu.Unlock()
		if tracked {
			h.Close()
		}
	})

	sub(scene.EventSheetClosed, func(e realtime.Event) {
		if !mine(e) {
			return
		}
		// Closing the full sheet hands the token back to the HUD.
		token, _ := h.cfg.Scene.Token(e.TokenID)
		h.SetToken(context.Background(), token)
	})

	sub(scene.EventHUDClaimed, func(e realtime.Event) {
		if e.UserID == h.cfg.UserID {
			return
		}
		if id, ok := h.Tracked(); ok && id == e.TokenID {
			h.Close()
		}
	})

	sub(scene.EventActorUpdated, func(e realtime.Event) {
		h.mu.Lock()
		tracked := h.token != nil && h.token.ActorID == e.ActorID
		h.mu.Unlock()
		if tracked {
			h.Render(context.Background(), false)
		}
	})

	sub(scene.EventChatMessage, func(e realtime.Event) {
		if mine(e) {
			h.CloseIf(TriggerSendToChat)
		}
	})
	sub(scene.EventSpellCast, func(e realtime.Event) {
		if mine(e) {
			h.CloseIf(TriggerCastSpell)
		}
	})
	sub(scene.EventActionUsed, func(e realtime.Event) {
		if mine(e) {
			h.CloseIf(TriggerUseAction)
		}
	})
	sub(scene.EventHeroCardDrawn, func(e realtime.Event) {
		if mine(e) {
			h.CloseIf(TriggerDrawHeroCard)
		}
	})
}

// watchSettings re-renders the open HUD when a display setting changes so the
// new mode, font size, or scale takes effect immediately.
func (h *HUD) watchSettings() {
	redraw := func(string) {
		h.Render(context.Background(), true)
	}
	for _, key := range []settings.Key{settings.KeyMode, settings.KeyFontSize, settings.KeyScaleWithZoom} {
		h.cancels = append(h.cancels, h.cfg.Settings.OnChange(key, redraw))
	}
}
