// Package relay fans notification events out to connected clients over
// Server-Sent Events. Clients join named rooms; publishing targets one room.
package relay

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is one notification as delivered to clients.
type Event struct {
	EventType string `json:"event"`
	Data      string `json:"data"`
}

// Client is one connected subscriber. Events is buffered; a full buffer drops
// events rather than blocking the publisher.
type Client struct {
	ID     string
	UserID *string
	Room   string
	Events chan Event
}

// Hub tracks connected clients grouped by room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[string]*Client),
	}
}

// Join registers the client in its room.
func (h *Hub) Join(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.Room]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[client.Room] = room
	}
	room[client.ID] = client

	logrus.WithFields(logrus.Fields{
		"client_id": client.ID,
		"room":      client.Room,
		"room_size": len(room),
	}).Debug("relay client joined")
}

// Leave removes the client and closes its event channel. Safe to call for a
// client that already left.
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.Room]
	if !ok {
		return
	}
	if _, ok := room[client.ID]; !ok {
		return
	}
	close(client.Events)
	delete(room, client.ID)
	if len(room) == 0 {
		delete(h.rooms, client.Room)
	}

	logrus.WithFields(logrus.Fields{
		"client_id": client.ID,
		"room":      client.Room,
	}).Debug("relay client left")
}

// Publish delivers the event to every client in the room. Clients whose
// buffers are full are skipped, and the number of deliveries is returned.
func (h *Hub) Publish(room string, event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, client := range h.rooms[room] {
		select {
		case client.Events <- event:
			delivered++
		default:
			logrus.WithFields(logrus.Fields{
				"client_id": client.ID,
				"room":      room,
			}).Warn("relay client buffer full, dropping event")
		}
	}
	return delivered
}

// RoomSize reports how many clients are in the room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
