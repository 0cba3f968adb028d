package services

import (
	"math/rand"
	"sync"

	"github.com/bellapacxx/tambola-backend/game"
)

const (
	roomCodeLength   = 5
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Registry is the process-wide code-to-room store. It is constructed at
// startup and injected everywhere a room lookup is needed; its own mutex
// serializes create/lookup/delete across connection goroutines.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*game.Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*game.Room)}
}

// CreateRoom allocates a fresh unique code and stores a new lobby-phase
// room with the given moderator.
func (reg *Registry) CreateRoom(moderatorID, moderatorName string) *game.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code := reg.newCode()
	room := game.NewRoom(code, moderatorID, moderatorName)
	reg.rooms[code] = room
	return room
}

func (reg *Registry) newCode() string {
	buf := make([]byte, roomCodeLength)
	for {
		for i := range buf {
			buf[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
		}
		code := string(buf)
		if _, exists := reg.rooms[code]; !exists {
			return code
		}
	}
}

// Get returns the room for code, if it exists.
func (reg *Registry) Get(code string) (*game.Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[code]
	return room, ok
}

// Delete removes the room for code.
func (reg *Registry) Delete(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

// Rooms returns all rooms currently registered.
func (reg *Registry) Rooms() []*game.Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	rooms := make([]*game.Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// Len returns the number of registered rooms.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
