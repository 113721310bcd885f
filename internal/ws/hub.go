// Package ws pushes live enrollment feedback and attendance events to
// connected browsers over websockets. Clients watching an enrollment session
// subscribe to that session's ID; attendance dashboards subscribe globally.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Hub struct {
	clients    map[*Client]bool
	sessions   map[uuid.UUID]map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		sessions:   make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.dispatch(event)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		delete(h.sessions[client.sessionID], client)

		if len(h.sessions[client.sessionID]) == 0 {
			delete(h.sessions, client.sessionID)
		}

		close(client.send)
	}
}

// dispatch sends the event to the session's subscribers; events with a nil
// session ID go to every connected client.
func (h *Hub) dispatch(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	message, err := json.Marshal(event)
	if err != nil {
		return
	}

	if event.SessionID == uuid.Nil {
		for client := range h.clients {
			h.send(client, message)
		}
		return
	}

	for client := range h.sessions[event.SessionID] {
		h.send(client, message)
	}
}

func (h *Hub) send(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		close(client.send)
		delete(h.clients, client)
		delete(h.sessions[client.sessionID], client)
	}
}

// BroadcastToSession queues an event for one session's subscribers.
func (h *Hub) BroadcastToSession(sessionID uuid.UUID, eventType EventType, data interface{}) {
	event := Event{
		SessionID: sessionID,
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
	}
}

// BroadcastAll queues an event for every connected client.
func (h *Hub) BroadcastAll(eventType EventType, data interface{}) {
	h.BroadcastToSession(uuid.Nil, eventType, data)
}

func (h *Hub) GetConnectedClients(sessionID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.sessions[sessionID])
}
