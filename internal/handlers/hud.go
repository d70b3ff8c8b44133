package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"tokenhud/internal/auth"
	"tokenhud/internal/hud"
	"tokenhud/internal/scene"
	"tokenhud/internal/settings"
)

// HudHandler serves the HUD websocket and the settings endpoints.
type HudHandler struct {
	scenes   *scene.Store
	settings *settings.Store
	auth     *auth.Auth
	registry *hud.Registry
	renderer hud.Renderer
	logger   *log.Logger
}

// NewHudHandler creates the HUD handler. A nil logger falls back to the
// default logger.
func NewHudHandler(scenes *scene.Store, settingsStore *settings.Store, authSvc *auth.Auth, registry *hud.Registry, renderer hud.Renderer, logger *log.Logger) *HudHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &HudHandler{
		scenes:   scenes,
		settings: settingsStore,
		auth:     authSvc,
		registry: registry,
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterRoutes mounts the HUD routes on the router.
func (h *HudHandler) RegisterRoutes(r chi.Router) {
	r.Get("/scene/{id}/hud", h.serveWS)
	r.Get("/settings", h.getSettings)
	r.Post("/settings", h.setSetting)
}

func (h *HudHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	all := h.settings.All()
	out := make(map[string]string, len(all))
	for key, value := range all {
		out[string(key)] = value
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *HudHandler) setSetting(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := userFromRequest(r, h.auth); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	key := settings.Key(strings.TrimSpace(r.FormValue("key")))
	value := strings.TrimSpace(r.FormValue("value"))
	if !settings.Known(key) {
		http.Error(w, "unknown setting", http.StatusBadRequest)
		return
	}
	if !validSettingValue(key, value) {
		http.Error(w, "invalid value", http.StatusBadRequest)
		return
	}
	if err := h.settings.Set(key, value); err != nil {
		h.logger.Printf("set setting %s: %v", key, err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validSettingValue(key settings.Key, value string) bool {
	switch key {
	case settings.KeyMode:
		return value == settings.ModeExploded || value == settings.ModeLeft || value == settings.ModeRight
	case settings.KeyCloseOnSendToChat, settings.KeyCloseOnCastSpell,
		settings.KeyCloseOnUseAction, settings.KeyCloseOnDrawHeroCard:
		return value == string(hud.PolicyNever) || value == string(hud.PolicySidebar) || value == string(hud.PolicyAll)
	default:
		return value != ""
	}
}
