package scene

import (
	"tokenhud/pkg/realtime"
)

// Event kinds published on a scene's bus. Gesture events carry the acting
// user's ID; HUD sessions ignore gestures from other users.
const (
	EventTokenSelected    realtime.EventKind = "token-selected"
	EventSelectionCleared realtime.EventKind = "selection-cleared"
	EventCanvasTransform  realtime.EventKind = "canvas-transform"
	EventCanvasClick      realtime.EventKind = "canvas-click"
	EventTokenDragStart   realtime.EventKind = "token-drag-start"
	EventSheetOpened      realtime.EventKind = "sheet-opened"
	EventSheetClosed      realtime.EventKind = "sheet-closed"
	EventHUDClaimed       realtime.EventKind = "hud-claimed"
	EventActorUpdated     realtime.EventKind = "actor-updated"
	EventChatMessage      realtime.EventKind = "chat-message"
	EventSpellCast        realtime.EventKind = "spell-cast"
	EventActionUsed       realtime.EventKind = "action-used"
	EventHeroCardDrawn    realtime.EventKind = "hero-card-drawn"
)

// Store holds scenes and delegates to realtime.RoomStore for event fan-out.
type Store struct {
	r *realtime.RoomStore[*Scene]
}

// NewStore creates an in-memory scene store.
func NewStore() *Store {
	return &Store{r: realtime.NewRoomStore[*Scene]()}
}

// CreateScene registers a scene and its event bus.
func (s *Store) CreateScene(name string, gridSize float64) *Scene {
	sc := New(name, gridSize)
	s.r.Create(sc.ID, sc)
	return sc
}

// GetScene returns a scene by ID if it exists.
func (s *Store) GetScene(id string) (*Scene, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, ok
}

// Bus returns the event bus for a scene, creating it if missing.
func (s *Store) Bus(id string) *realtime.Bus {
	return s.r.Bus(id)
}

// Publish notifies subscribers of a scene event.
func (s *Store) Publish(id string, event realtime.Event) {
	event.SceneID = id
	s.r.Publish(id, event)
}
