package table

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/hands"
)

var (
	ErrRoomClosed      = errors.New("room is closed")
	ErrRoomNotFound    = errors.New("room not found")
	ErrPlayerNotSeated = errors.New("player is not seated at this table")
)

// Manager keeps the set of live rooms. Rooms run independently; the
// manager only guards the map.
type Manager struct {
	mu        sync.RWMutex
	rooms     map[string]*Room
	evaluator hands.Evaluator
	logger    *log.Logger
}

// NewManager creates an empty room registry sharing one evaluator
func NewManager(evaluator hands.Evaluator, logger *log.Logger) *Manager {
	return &Manager{
		rooms:     make(map[string]*Room),
		evaluator: evaluator,
		logger:    logger,
	}
}

// CreateRoom builds, registers and starts a new room
func (m *Manager) CreateRoom(name string, rules Rules) *Room {
	room := NewRoom(name, rules, m.evaluator, m.logger)
	room.Start()

	m.mu.Lock()
	m.rooms[room.ID] = room
	m.mu.Unlock()

	m.logger.Info("room created", "id", room.ID, "name", name, "seats", rules.SeatCount)

	return room
}

// Room looks up a live room by its identifier
func (m *Manager) Room(id string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	room, ok := m.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Rooms returns the live rooms in no particular order
func (m *Manager) Rooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rooms := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// CloseRoom stops a room and removes it from the registry
func (m *Manager) CloseRoom(id string) error {
	m.mu.Lock()
	room, ok := m.rooms[id]
	if ok {
		delete(m.rooms, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrRoomNotFound
	}

	room.Stop()
	m.logger.Info("room closed", "id", id)
	return nil
}

// CloseAll stops every room, used on shutdown
func (m *Manager) CloseAll() {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for id, room := range m.rooms {
		rooms = append(rooms, room)
		delete(m.rooms, id)
	}
	m.mu.Unlock()

	for _, room := range rooms {
		room.Stop()
	}
}
