// Package hud owns the token HUD lifecycle: which token is tracked, whether a
// sidebar is showing, where the panel sits on screen, and when external
// events re-render or close it. At most one token is tracked at a time and
// every slot mutation replaces the slot's value whole.
package hud

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"tokenhud/internal/scene"
	"tokenhud/internal/settings"
	"tokenhud/pkg/realtime"
)

// ErrInvalidActionTarget reports a UI action referencing an item the rendered
// actor does not have. This is a markup/data mismatch bug, not a recoverable
// runtime condition; callers surface it, never retry it.
var ErrInvalidActionTarget = errors.New("invalid action target")

// Config wires a HUD session to its collaborators. Scene, Settings, Registry,
// Renderer, and Pusher are required; Bus is optional (without it the caller
// drives the HUD directly).
type Config struct {
	UserID   string
	Scene    *scene.Scene
	Settings *settings.Store
	Registry *Registry
	Renderer Renderer
	Pusher   Pusher
	Bus      *realtime.Bus
	Logger   *log.Logger
}

// HUD is one player's heads-up display session. Closed is the resting state;
// the session lives until Shutdown.
type HUD struct {
	cfg    Config
	logger *log.Logger

	mu         sync.Mutex
	token      *scene.Token
	sidebar    string
	container  Container
	transform  CanvasTransform
	placement  Placement
	generation uint64

	cancels []func()
}

// New creates a closed HUD session and installs its event subscriptions.
func New(cfg Config) (*HUD, error) {
	if cfg.Scene == nil {
		return nil, fmt.Errorf("hud: scene is required")
	}
	if cfg.Settings == nil {
		return nil, fmt.Errorf("hud: settings store is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("hud: provider registry is required")
	}
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("hud: renderer is required")
	}
	if cfg.Pusher == nil {
		return nil, fmt.Errorf("hud: pusher is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &HUD{cfg: cfg, logger: logger}
	if cfg.Bus != nil {
		h.subscribe(cfg.Bus)
	}
	h.watchSettings()
	return h, nil
}

// SetToken tracks candidate and opens the HUD, or closes it when candidate is
// nil. An ineligible candidate is treated exactly like nil: the selection is
// quietly dropped and the HUD closes instead of erroring. Switching tokens
// always closes the sidebar first, since it belongs to the old token.
func (h *HUD) SetToken(ctx context.Context, candidate *scene.Token) {
	h.mu.Lock()
	frames := h.closeSidebarLocked()
	if candidate != nil {
		if reason := h.ineligible(candidate); reason != "" {
			h.logger.Printf("hud: dropping selection of token %s: %s", candidate.ID, reason)
			candidate = nil
		}
	}
	if candidate == nil {
		frames = append(frames, h.closeLocked()...)
		h.mu.Unlock()
		h.push(frames)
		return
	}
	h.token = candidate
	h.generation++
	gen := h.generation
	h.mu.Unlock()
	h.push(frames)
	h.renderPass(ctx, gen, true)
}

// Close tears the HUD down. Idempotent; reports whether it was open.
func (h *HUD) Close() bool {
	h.mu.Lock()
	wasOpen := h.token != nil
	frames := append(h.closeSidebarLocked(), h.closeLocked()...)
	h.mu.Unlock()
	h.push(frames)
	return wasOpen
}

// Tracked returns the tracked token's ID, if any.
func (h *HUD) Tracked() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.token == nil {
		return "", false
	}
	return h.token.ID, true
}

// Open reports whether a token is tracked.
func (h *HUD) Open() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token != nil
}

// SetTransform records the new canvas pan/zoom state and re-anchors the
// mounted panel. Position is recomputed from the live transform every time;
// nothing accumulates.
func (h *HUD) SetTransform(tr CanvasTransform) {
	h.mu.Lock()
	h.transform = tr
	if h.token == nil || !h.container.Mounted() {
		h.mu.Unlock()
		return
	}
	placement := h.resolveLocked(h.token)
	sidebar := h.sidebar
	h.mu.Unlock()
	h.cfg.Pusher.Push(Frame{Type: FramePosition, Placement: &placement, Sidebar: sidebar})
}

// CanvasClick applies the two-stage dismissal gesture: the first click
// collapses the sidebar, the next closes the HUD. A setting opts into
// single-stage full close.
func (h *HUD) CanvasClick() {
	if h.cfg.Settings.GetBool(settings.KeyFullCloseOnCanvasClick) {
		h.Close()
		return
	}
	if h.CloseSidebar() {
		return
	}
	h.Close()
}

// SetFocus records which element holds keyboard focus in the mounted panel.
func (h *HUD) SetFocus(name string) {
	h.mu.Lock()
	if h.container.Mounted() {
		h.container.SetFocus(name)
	}
	h.mu.Unlock()
}

// Blur clears the focus record.
func (h *HUD) Blur() {
	h.mu.Lock()
	h.container.Blur()
	h.mu.Unlock()
}

// UseAction resolves an action button press against the tracked actor,
// consuming a frequency use when the action has one. A target the actor does
// not have is a contract violation and returns ErrInvalidActionTarget; an
// exhausted frequency is a quiet no-op (the button renders disabled).
func (h *HUD) UseAction(ctx context.Context, target string) error {
	h.mu.Lock()
	token := h.token
	h.mu.Unlock()
	if token == nil {
		return fmt.Errorf("%w: %q pressed with no token tracked", ErrInvalidActionTarget, target)
	}

	var found, consumed bool
	ok := h.cfg.Scene.UpdateActor(token.ActorID, func(a *scene.Actor) {
		for i := range a.Items {
			if a.Items[i].ID == target {
				found = true
				if f := a.Items[i].Frequency; f != nil {
					if f.Remaining() == 0 {
						return
					}
					f.Used++
				}
				consumed = true
				return
			}
		}
		for _, s := range a.Strikes {
			if s.Slug == target {
				found, consumed = true, true
				return
			}
		}
		for _, b := range a.Blasts {
			if b.Element == target {
				found, consumed = true, true
				return
			}
		}
	})
	if !ok || !found {
		return fmt.Errorf("%w: %q", ErrInvalidActionTarget, target)
	}
	if consumed && h.cfg.Bus != nil {
		h.cfg.Bus.Publish(realtime.Event{
			Kind: scene.EventActorUpdated, SceneID: h.cfg.Scene.ID, ActorID: token.ActorID,
		})
		h.cfg.Bus.Publish(realtime.Event{
			Kind: scene.EventActionUsed, SceneID: h.cfg.Scene.ID,
			ActorID: token.ActorID, UserID: h.cfg.UserID,
		})
	}
	return nil
}

// Shutdown cancels all subscriptions and closes the HUD.
func (h *HUD) Shutdown() {
	for _, cancel := range h.cancels {
		cancel()
	}
	h.cancels = nil
	h.Close()
}

// Eligibility reasons, logged but never surfaced: selection of an ineligible
// token behaves exactly like clearing the selection.
func (h *HUD) ineligible(t *scene.Token) string {
	if !t.ControllableBy(h.cfg.UserID) {
		return "not controllable by user"
	}
	switch t.Category {
	case scene.CategoryLoot, scene.CategoryParty:
		return "excluded category " + string(t.Category)
	}
	actor, ok := h.cfg.Scene.Actor(t.ActorID)
	if ok && h.cfg.Scene.SheetOpen(actor.ID) {
		return "full sheet already open"
	}
	if claimant, claimed := h.cfg.Scene.HUDClaimedBy(t.ID); claimed && claimant != h.cfg.UserID {
		return "claimed by persistent HUD"
	}
	return ""
}

// closeLocked clears the tracked-token slot and tears down the container.
// Bumping the generation discards any in-flight render.
func (h *HUD) closeLocked() []Frame {
	if h.token == nil && !h.container.Mounted() {
		return nil
	}
	h.token = nil
	h.sidebar = ""
	h.container.Unmount()
	h.generation++
	return []Frame{{Type: FrameClose}}
}

func (h *HUD) resolveLocked(token *scene.Token) Placement {
	opts := PlacementOptions{
		Mode:          h.cfg.Settings.Get(settings.KeyMode),
		ScaleWithZoom: h.cfg.Settings.GetBool(settings.KeyScaleWithZoom),
	}
	h.placement = ResolvePlacement(h.transform, token.Bounds, h.cfg.Scene.GridSize, opts, h.placement)
	return h.placement
}

func (h *HUD) push(frames []Frame) {
	for _, f := range frames {
		h.cfg.Pusher.Push(f)
	}
}
