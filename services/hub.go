package services

import (
	"encoding/json"
	"sync"

	"github.com/bellapacxx/tambola-backend/utils/logger"
)

// envelope is the wire shape of every server-to-client event.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub tracks live connections and their room groups and is the only
// Emitter implementation backed by a real transport. It only ever reads
// snapshots handed to it; room state is never mutated here.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	groups  map[string]map[string]bool // roomCode -> clientID set
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		groups:  make(map[string]map[string]bool),
	}
}

// Register adds a freshly upgraded connection.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[c.id]; ok {
		old.Close()
	}
	h.clients[c.id] = c
}

// Unregister drops a connection and removes it from every group.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[clientID]
	if !ok {
		return
	}
	delete(h.clients, clientID)
	client.Close()

	for code, members := range h.groups {
		delete(members, clientID)
		if len(members) == 0 {
			delete(h.groups, code)
		}
	}
}

func (h *Hub) JoinRoom(clientID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[roomCode]
	if !ok {
		members = make(map[string]bool)
		h.groups[roomCode] = members
	}
	members[clientID] = true
}

func (h *Hub) LeaveRoom(clientID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.groups[roomCode]; ok {
		delete(members, clientID)
		if len(members) == 0 {
			delete(h.groups, roomCode)
		}
	}
}

func (h *Hub) IsConnected(clientID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[clientID]
	return ok
}

// ToClient delivers one event to one connection. Slow clients get the
// message dropped rather than blocking the caller.
func (h *Hub) ToClient(clientID, event string, payload any) {
	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	b, err := json.Marshal(envelope{Type: event, Data: payload})
	if err != nil {
		logger.Errorf("[Hub] marshal %s: %v", event, err)
		return
	}
	client.Send(b)
}

// ToRoom multicasts one event to every connection in a room group.
func (h *Hub) ToRoom(roomCode, event string, payload any) {
	b, err := json.Marshal(envelope{Type: event, Data: payload})
	if err != nil {
		logger.Errorf("[Hub] marshal %s: %v", event, err)
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.groups[roomCode]))
	for id := range h.groups[roomCode] {
		if c, ok := h.clients[id]; ok {
			members = append(members, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.Send(b)
	}
}
