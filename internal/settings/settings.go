// Package settings is a typed, persisted key/value configuration store with
// change callbacks. Writes are last-writer-wins and propagate to callbacks
// immediately; there is no batching across keys.
package settings

import (
	"database/sql"
	"strconv"
	"sync"
)

// Key names one setting.
type Key string

const (
	// KeyMode selects the HUD layout variant: exploded, left, or right.
	KeyMode Key = "hud.mode"
	// KeyFontSize is the HUD font size in pixels.
	KeyFontSize Key = "hud.fontSize"
	// KeyScaleWithZoom scales the HUD with the canvas zoom instead of 1:1.
	KeyScaleWithZoom Key = "hud.scaleWithZoom"
	// KeyFullCloseOnCanvasClick makes a canvas click close the whole HUD in
	// one step instead of collapsing the sidebar first.
	KeyFullCloseOnCanvasClick Key = "hud.fullCloseOnCanvasClick"

	// Per-event close policies: "never", "sidebar", or "all".
	KeyCloseOnSendToChat   Key = "close.sendToChat"
	KeyCloseOnCastSpell    Key = "close.castSpell"
	KeyCloseOnUseAction    Key = "close.useAction"
	KeyCloseOnDrawHeroCard Key = "close.drawHeroCard"
)

// HUD layout modes.
const (
	ModeExploded = "exploded"
	ModeLeft     = "left"
	ModeRight    = "right"
)

var defaults = map[Key]string{
	KeyMode:                   ModeExploded,
	KeyFontSize:               "14",
	KeyScaleWithZoom:          "false",
	KeyFullCloseOnCanvasClick: "false",
	KeyCloseOnSendToChat:      "never",
	KeyCloseOnCastSpell:       "never",
	KeyCloseOnUseAction:       "never",
	KeyCloseOnDrawHeroCard:    "never",
}

// Known reports whether key is a setting this store manages.
func Known(key Key) bool {
	_, ok := defaults[key]
	return ok
}

// Store holds setting values, optionally backed by SQLite. A nil-db store is
// memory-only, which the tests and defaults rely on.
type Store struct {
	mu       sync.Mutex
	values   map[Key]string
	db       *sql.DB
	next     int
	watchers map[Key]map[int]func(value string)
}

// New creates a memory-only settings store seeded with defaults.
func New() *Store {
	return &Store{
		values:   make(map[Key]string),
		watchers: make(map[Key]map[int]func(string)),
	}
}

// Get returns the stored value for key, or its default.
func (s *Store) Get(key Key) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return defaults[key]
}

// GetBool returns the setting parsed as a bool; unparseable values fall back
// to the default.
func (s *Store) GetBool(key Key) bool {
	v, err := strconv.ParseBool(s.Get(key))
	if err != nil {
		v, _ = strconv.ParseBool(defaults[key])
	}
	return v
}

// GetInt returns the setting parsed as an int; unparseable values fall back
// to the default.
func (s *Store) GetInt(key Key) int {
	v, err := strconv.Atoi(s.Get(key))
	if err != nil {
		v, _ = strconv.Atoi(defaults[key])
	}
	return v
}

// Set stores a value, persists it when a database is attached, and fires
// change callbacks for the key. Callbacks run synchronously on the caller's
// goroutine, outside the store lock.
func (s *Store) Set(key Key, value string) error {
	s.mu.Lock()
	if s.db != nil {
		if err := persist(s.db, key, value); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.values[key] = value
	callbacks := make([]func(string), 0, len(s.watchers[key]))
	for _, fn := range s.watchers[key] {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(value)
	}
	return nil
}

// OnChange registers a callback fired on every Set of key. The returned
// cancel func removes it; canceling twice is safe.
func (s *Store) OnChange(key Key, fn func(value string)) (cancel func()) {
	s.mu.Lock()
	s.next++
	id := s.next
	watchers, ok := s.watchers[key]
	if !ok {
		watchers = make(map[int]func(string))
		s.watchers[key] = watchers
	}
	watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if watchers, ok := s.watchers[key]; ok {
			delete(watchers, id)
		}
		s.mu.Unlock()
	}
}

// All returns every known key with its effective value.
func (s *Store) All() map[Key]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Key]string, len(defaults))
	for key, def := range defaults {
		if v, ok := s.values[key]; ok {
			out[key] = v
		} else {
			out[key] = def
		}
	}
	return out
}

// Close releases the backing database, if any.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
