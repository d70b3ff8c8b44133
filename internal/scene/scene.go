package scene

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
	"sync"
	"time"
)

// Category classifies what a token represents on the canvas.
type Category string

const (
	CategoryCharacter Category = "character"
	CategoryNPC       Category = "npc"
	CategoryHazard    Category = "hazard"
	CategoryVehicle   Category = "vehicle"
	CategoryLoot      Category = "loot"
	CategoryParty     Category = "party"
)

// GridRect is a rectangle measured in grid units (world space).
type GridRect struct {
	X, Y, W, H float64
}

// HealthBlock is an actor's hit point pool. Actors mid-update may lack one.
type HealthBlock struct {
	Current int
	Max     int
	Temp    int
}

// Saves are the three saving throw modifiers.
type Saves struct {
	Fortitude int
	Reflex    int
	Will      int
}

// Frequency limits how often an action item can be used.
type Frequency struct {
	Max  int
	Used int
	Per  string // "round", "day", ...
}

// Remaining returns how many uses are left.
func (f Frequency) Remaining() int {
	left := f.Max - f.Used
	if left < 0 {
		return 0
	}
	return left
}

// ActionItem is a feat or action carried by an actor. Category buckets it for
// the actions sidebar ("encounter", "exploration", "downtime", "free").
type ActionItem struct {
	ID        string
	Name      string
	Cost      string // "1", "2", "3", "free", "reaction"
	Category  string
	Traits    []string
	Frequency *Frequency
}

// Strike is an innate weapon or unarmed attack.
type Strike struct {
	Slug   string
	Label  string
	Bonus  int
	Damage string
	Traits []string
	Ready  bool
}

// Blast is an elemental blast usable like a strike.
type Blast struct {
	Element string
	Label   string
	Bonus   int
	Damage  string
	Range   int
}

// Stance is a stance entry contributed by the optional stance system. ItemID
// names the action item the stance replaces in the sidebar.
type Stance struct {
	ItemID string
	Name   string
	Active bool
}

// Actor is the sheet data behind one or more tokens.
type Actor struct {
	ID         string
	Name       string
	Level      int
	HP         *HealthBlock
	AC         int
	Perception int
	Saves      Saves
	Speed      int
	Senses     string
	HeroPoints int
	Items      []ActionItem
	Strikes    []Strike
	Blasts     []Blast
	Stances    []Stance
}

// Item returns the action item with the given ID.
func (a *Actor) Item(id string) (ActionItem, bool) {
	for _, item := range a.Items {
		if item.ID == id {
			return item, true
		}
	}
	return ActionItem{}, false
}

// snapshot returns a deep copy of the actor that is safe to read after the
// scene lock is released.
func (a *Actor) snapshot() *Actor {
	c := *a
	if a.HP != nil {
		hp := *a.HP
		c.HP = &hp
	}
	c.Items = make([]ActionItem, len(a.Items))
	for i, item := range a.Items {
		item.Traits = append([]string(nil), item.Traits...)
		if item.Frequency != nil {
			f := *item.Frequency
			item.Frequency = &f
		}
		c.Items[i] = item
	}
	c.Strikes = make([]Strike, len(a.Strikes))
	for i, strike := range a.Strikes {
		strike.Traits = append([]string(nil), strike.Traits...)
		c.Strikes[i] = strike
	}
	c.Blasts = append([]Blast(nil), a.Blasts...)
	c.Stances = append([]Stance(nil), a.Stances...)
	return &c
}

// Token is a game piece placed on the scene. Bounds are in grid units.
type Token struct {
	ID       string
	Name     string
	ActorID  string
	Bounds   GridRect
	Category Category
	Owners   []string
}

// ControllableBy reports whether the user may control this token.
func (t *Token) ControllableBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, owner := range t.Owners {
		if owner == userID {
			return true
		}
	}
	return false
}

// Scene holds the tokens and actors for one canvas view, plus the open-sheet
// and persistent-HUD bookkeeping the HUD eligibility checks consult.
type Scene struct {
	mu         sync.Mutex
	ID         string
	Name       string
	GridSize   float64 // pixels per grid unit
	CreatedAt  time.Time
	tokens     map[string]*Token
	actors     map[string]*Actor
	openSheets map[string]bool   // actor ID -> full sheet open
	hudClaims  map[string]string // token ID -> claimant (persistent HUD owner)
}

// New creates an empty scene with the given name and grid size.
func New(name string, gridSize float64) *Scene {
	if gridSize <= 0 {
		gridSize = 100
	}
	return &Scene{
		ID:         NewID(),
		Name:       name,
		GridSize:   gridSize,
		CreatedAt:  time.Now().UTC(),
		tokens:     make(map[string]*Token),
		actors:     make(map[string]*Actor),
		openSheets: make(map[string]bool),
		hudClaims:  make(map[string]string),
	}
}

// AddActor registers an actor, assigning an ID if unset.
func (s *Scene) AddActor(actor *Actor) *Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if actor.ID == "" {
		actor.ID = NewID()
	}
	s.actors[actor.ID] = actor
	return actor
}

// AddToken places a token, assigning an ID if unset.
func (s *Scene) AddToken(token *Token) *Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token.ID == "" {
		token.ID = NewID()
	}
	s.tokens[token.ID] = token
	return token
}

// Token returns a copy of the token by ID if it exists. Readers never see
// the map's own pointer; all mutation stays under the scene lock.
func (s *Scene) Token(id string) (*Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[id]
	if !ok {
		return nil, false
	}
	c := *t
	c.Owners = append([]string(nil), t.Owners...)
	return &c, true
}

// Actor returns a deep copy of the actor by ID if it exists. Render pipelines
// and providers read the copy; writes go through UpdateActor.
func (s *Scene) Actor(id string) (*Actor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.actors[id]
	if !ok {
		return nil, false
	}
	return a.snapshot(), true
}

// UpdateActor mutates an actor under the scene lock. The caller publishes the
// matching actor-updated event after this returns.
func (s *Scene) UpdateActor(id string, mutate func(*Actor)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.actors[id]
	if !ok {
		return false
	}
	mutate(a)
	return true
}

// SetSheetOpen records whether an actor's full sheet is open.
func (s *Scene) SetSheetOpen(actorID string, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.openSheets[actorID] = true
	} else {
		delete(s.openSheets, actorID)
	}
}

// SheetOpen reports whether the actor's full sheet is open.
func (s *Scene) SheetOpen(actorID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openSheets[actorID]
}

// ClaimHUD records that a persistent HUD owns the token. Returns false if a
// different claimant already holds it.
func (s *Scene) ClaimHUD(tokenID, claimant string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.hudClaims[tokenID]; ok && current != claimant {
		return false
	}
	s.hudClaims[tokenID] = claimant
	return true
}

// ReleaseHUD drops a persistent HUD claim if held by the claimant.
func (s *Scene) ReleaseHUD(tokenID, claimant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hudClaims[tokenID] == claimant {
		delete(s.hudClaims, tokenID)
	}
}

// HUDClaimedBy returns who holds a persistent HUD claim on the token, if anyone.
func (s *Scene) HUDClaimedBy(tokenID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claimant, ok := s.hudClaims[tokenID]
	return claimant, ok
}

// TokenNames returns a snapshot of token IDs to display names.
func (s *Scene) TokenNames() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make(map[string]string, len(s.tokens))
	for id, t := range s.tokens {
		names[id] = t.Name
	}
	return names
}

// TokenSummary describes one token for the scene page.
type TokenSummary struct {
	ID       string
	Name     string
	Category Category
	Bounds   GridRect
}

// Tokens returns a snapshot of all tokens for rendering the scene page.
func (s *Scene) Tokens() []TokenSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TokenSummary, 0, len(s.tokens))
	for _, t := range s.tokens {
		out = append(out, TokenSummary{ID: t.ID, Name: t.Name, Category: t.Category, Bounds: t.Bounds})
	}
	return out
}

// NewID returns a short url-safe identifier.
func NewID() string {
	// 10 bytes -> 16 chars of base32, short and url-safe.
	buf := make([]byte, 10)
	_, _ = rand.Read(buf)
	encoder := base32.StdEncoding.WithPadding(base32.NoPadding)
	return strings.ToLower(encoder.EncodeToString(buf))
}
