package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"tokenhud/internal/hud"
	"tokenhud/internal/scene"
	"tokenhud/pkg/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// clientMessage is one canvas gesture or UI action from the browser.
type clientMessage struct {
	Type      string               `json:"type"`
	TokenID   string               `json:"tokenId,omitempty"`
	Name      string               `json:"name,omitempty"`
	Target    string               `json:"target,omitempty"`
	Transform *hud.CanvasTransform `json:"transform,omitempty"`
}

// wsSession owns one HUD websocket. Frames are written by a single pump
// goroutine; a lagging client drops frames rather than blocking the HUD.
type wsSession struct {
	conn   *websocket.Conn
	logger *log.Logger
	send   chan hud.Frame
	done   chan struct{}
}

// Push queues a frame for the client.
func (s *wsSession) Push(frame hud.Frame) {
	select {
	case s.send <- frame:
	case <-s.done:
	default:
		s.logger.Printf("ws: dropping %s frame for lagging client", frame.Type)
	}
}

func (s *wsSession) writePump() {
	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()
	for {
		select {
		case <-s.done:
			return
		case frame := <-s.send:
			if err := s.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-keepAlive.C:
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *HudHandler) serveWS(w http.ResponseWriter, r *http.Request) {
	sceneID := chi.URLParam(r, "id")
	sc, ok := h.scenes.GetScene(sceneID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	userID, _, ok := userFromRequest(r, h.auth)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws: upgrade failed: %v", err)
		return
	}
	session := &wsSession{
		conn:   conn,
		logger: h.logger,
		send:   make(chan hud.Frame, 16),
		done:   make(chan struct{}),
	}
	go session.writePump()
	defer func() {
		close(session.done)
		conn.Close()
	}()

	bus := h.scenes.Bus(sceneID)
	hudSession, err := hud.New(hud.Config{
		UserID:   userID,
		Scene:    sc,
		Settings: h.settings,
		Registry: h.registry,
		Renderer: h.renderer,
		Pusher:   session,
		Bus:      bus,
		Logger:   h.logger,
	})
	if err != nil {
		h.logger.Printf("ws: hud session failed: %v", err)
		return
	}
	defer hudSession.Shutdown()

	ctx := r.Context()
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		h.dispatch(ctx, sc, bus, hudSession, session, userID, msg)
	}
}

// dispatch maps one client message onto a bus event or a direct HUD call.
// Canvas gestures go through the bus so the HUD reacts the same way to every
// notification source.
func (h *HudHandler) dispatch(ctx context.Context, sc *scene.Scene, bus *realtime.Bus, hudSession *hud.HUD, session *wsSession, userID string, msg clientMessage) {
	publish := func(kind realtime.EventKind, e realtime.Event) {
		e.Kind = kind
		e.SceneID = sc.ID
		e.UserID = userID
		bus.Publish(e)
	}

	switch msg.Type {
	case "select":
		publish(scene.EventTokenSelected, realtime.Event{TokenID: msg.TokenID})
	case "deselect":
		publish(scene.EventSelectionCleared, realtime.Event{})
	case "transform":
		if msg.Transform != nil {
			publish(scene.EventCanvasTransform, realtime.Event{Data: *msg.Transform})
		}
	case "canvasClick":
		publish(scene.EventCanvasClick, realtime.Event{})
	case "dragStart":
		publish(scene.EventTokenDragStart, realtime.Event{TokenID: msg.TokenID})
	case "sheetOpened":
		if token, ok := sc.Token(msg.TokenID); ok {
			sc.SetSheetOpen(token.ActorID, true)
			publish(scene.EventSheetOpened, realtime.Event{TokenID: token.ID, ActorID: token.ActorID})
		}
	case "sheetClosed":
		if token, ok := sc.Token(msg.TokenID); ok {
			sc.SetSheetOpen(token.ActorID, false)
			publish(scene.EventSheetClosed, realtime.Event{TokenID: token.ID, ActorID: token.ActorID})
		}
	case "focus":
		hudSession.SetFocus(msg.Name)
	case "blur":
		hudSession.Blur()
	case "toggleSidebar":
		hudSession.ToggleSidebar(ctx, msg.Name)
	case "useAction":
		if err := hudSession.UseAction(ctx, msg.Target); err != nil {
			if errors.Is(err, hud.ErrInvalidActionTarget) {
				// Markup/data mismatch bug: surface it, never retry.
				h.logger.Printf("ws: %v (user %s)", err, userID)
				session.Push(hud.Frame{Type: hud.FrameError, Message: err.Error()})
				return
			}
			h.logger.Printf("ws: use action: %v", err)
		}
	case "sendToChat":
		publish(scene.EventChatMessage, realtime.Event{})
	case "castSpell":
		publish(scene.EventSpellCast, realtime.Event{})
	case "drawHeroCard":
		publish(scene.EventHeroCardDrawn, realtime.Event{})
	case "render":
		hudSession.Render(ctx, true)
	default:
		h.logger.Printf("ws: discarding unknown message type %q from %s", msg.Type, userID)
	}
}
