package realtime

import "sync"

// Room holds state and an event bus for one room.
type Room[T any] struct {
	ID    string
	State T
	bus   *Bus
}

// RoomStore manages rooms and their event buses.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{rooms: make(map[string]*Room[T])}
}

// Create adds a room with the given id and state, and a new Bus.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Room[T]{ID: id, State: state, bus: NewBus()}
	s.rooms[id] = r
	return r
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Bus returns the event bus for the room, creating it if the room exists but had none.
func (s *RoomStore[T]) Bus(id string) *Bus {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		bus := NewBus()
		s.rooms[id] = &Room[T]{ID: id, bus: bus}
		return bus
	}
	if r.bus == nil {
		r.bus = NewBus()
	}
	return r.bus
}

// Publish delivers an event on the room's bus.
func (s *RoomStore[T]) Publish(id string, event Event) {
	s.Bus(id).Publish(event)
}
