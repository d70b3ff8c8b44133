package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"tokenhud/internal/auth"
	"tokenhud/internal/scene"
	"tokenhud/internal/viewmodel"
	"tokenhud/views/pages"
)

const sessionCookie = "tokenhud_session"

// SceneHandler serves the scene pages and the join flow.
type SceneHandler struct {
	scenes  *scene.Store
	auth    *auth.Auth
	baseURL string
}

// NewSceneHandler creates the scene page handler. baseURL overrides the
// request host in invite links when set.
func NewSceneHandler(scenes *scene.Store, authSvc *auth.Auth, baseURL string) *SceneHandler {
	return &SceneHandler{scenes: scenes, auth: authSvc, baseURL: strings.TrimSpace(baseURL)}
}

// RegisterRoutes mounts the scene routes on the router.
func (h *SceneHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/scenes", h.createScene)
	r.Get("/scene/{id}", h.scenePage)
	r.Post("/scene/{id}/join", h.join)
}

func (h *SceneHandler) home(w http.ResponseWriter, r *http.Request) {
	data := viewmodel.HomePage{Title: "tokenhud"}
	// The store has no listing; the home page links only scenes created this
	// session via redirects. Kept minimal on purpose.
	render(w, r, pages.HomePage(data))
}

func (h *SceneHandler) createScene(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "scene name required", http.StatusBadRequest)
		return
	}
	grid := parseFloat(r.FormValue("grid"), 100)
	if grid < 10 {
		grid = 10
	}
	if grid > 400 {
		grid = 400
	}
	sc := h.scenes.CreateScene(name, grid)
	http.Redirect(w, r, "/scene/"+sc.ID, http.StatusSeeOther)
}

func (h *SceneHandler) scenePage(w http.ResponseWriter, r *http.Request) {
	sceneID := chi.URLParam(r, "id")
	sc, ok := h.scenes.GetScene(sceneID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	_, username, hasPlayer := userFromRequest(r, h.auth)
	tokens := sc.Tokens()
	viewTokens := make([]viewmodel.SceneToken, 0, len(tokens))
	for _, t := range tokens {
		viewTokens = append(viewTokens, viewmodel.SceneToken{
			ID: t.ID, Name: t.Name, Category: string(t.Category),
			X: t.Bounds.X, Y: t.Bounds.Y, W: t.Bounds.W, H: t.Bounds.H,
		})
	}
	data := viewmodel.ScenePage{
		Title:     "tokenhud",
		SceneID:   sc.ID,
		SceneName: sc.Name,
		GridSize:  sc.GridSize,
		Tokens:    viewTokens,
		HasPlayer: hasPlayer,
		UserName:  username,
		InviteURL: h.inviteURL(r, sc.ID),
	}
	render(w, r, pages.ScenePage(data))
}

func (h *SceneHandler) join(w http.ResponseWriter, r *http.Request) {
	sceneID := chi.URLParam(r, "id")
	sc, ok := h.scenes.GetScene(sceneID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}
	if len(username) > 20 {
		username = username[:20]
	}

	userID := scene.NewID()
	token, err := h.auth.IssueToken(userID, username)
	if err != nil {
		http.Error(w, "session failed", http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, token)

	// First player into an empty scene gets the demo encounter to drive.
	if len(sc.Tokens()) == 0 {
		scene.SeedDemo(sc, userID)
	}
	http.Redirect(w, r, "/scene/"+sceneID, http.StatusSeeOther)
}

func userFromRequest(r *http.Request, authSvc *auth.Auth) (userID, username string, ok bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", "", false
	}
	userID, username, err = authSvc.ParseToken(cookie.Value)
	if err != nil {
		return "", "", false
	}
	return userID, username, true
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
}

func (h *SceneHandler) inviteURL(r *http.Request, sceneID string) string {
	if h.baseURL != "" {
		return strings.TrimRight(h.baseURL, "/") + "/scene/" + sceneID
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/scene/" + sceneID
}

func parseFloat(value string, fallback float64) float64 {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
