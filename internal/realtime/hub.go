package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub tracks which clients are subscribed to which trip rooms and fans
// trip events out to them. A room exists only while it has subscribers.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]bool
	logger zerolog.Logger
}

// NewHub creates an empty hub
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]bool),
		logger: logger,
	}
}

// Subscribe adds the client to a trip room. Subscribing twice is a no-op.
func (h *Hub) Subscribe(tripID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[tripID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[tripID] = room
	}
	if room[c] {
		return
	}
	room[c] = true
	c.rooms[tripID] = true

	h.logger.Debug().
		Str("trip_id", tripID).
		Str("connection_id", c.ID).
		Int("room_size", len(room)).
		Msg("client joined trip room")
}

// Unsubscribe removes the client from a trip room. Unsubscribing from a
// room the client never joined is a no-op. Empty rooms are deleted.
func (h *Hub) Unsubscribe(tripID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(tripID, c)
}

func (h *Hub) unsubscribeLocked(tripID string, c *Client) {
	room, ok := h.rooms[tripID]
	if !ok || !room[c] {
		return
	}
	delete(room, c)
	delete(c.rooms, tripID)
	if len(room) == 0 {
		delete(h.rooms, tripID)
	}
}

// Detach removes the client from every room it joined and returns the
// ids of the rooms it left. Called once when the connection closes.
func (h *Hub) Detach(c *Client) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	left := make([]string, 0, len(c.rooms))
	for tripID := range c.rooms {
		left = append(left, tripID)
		h.unsubscribeLocked(tripID, c)
	}
	return left
}

// InRoom reports whether the client is subscribed to a trip room
func (h *Hub) InRoom(tripID string, c *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[tripID][c]
}

// RoomSize reports how many clients are subscribed to a trip room
func (h *Hub) RoomSize(tripID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[tripID])
}

// Publish sends an event to every client in the trip's room except the
// connection named by excludeConnID. Sends never block: a client whose
// send buffer is full is dropped so one slow reader cannot stall the
// mutation path.
func (h *Hub) Publish(tripID, eventType string, payload interface{}, excludeConnID string) {
	msg := Message{Type: eventType, Data: payload}

	h.mu.RLock()
	room := h.rooms[tripID]
	var slow []*Client
	for c := range room {
		if c.ID == excludeConnID {
			continue
		}
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn().
			Str("trip_id", tripID).
			Str("connection_id", c.ID).
			Str("event", eventType).
			Msg("dropping slow websocket client")
		h.drop(c)
	}
}

// drop detaches the client from all rooms and closes its send channel.
// The write pump drains, sends a close frame and closes the connection,
// which in turn ends the read pump.
func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	for tripID := range c.rooms {
		h.unsubscribeLocked(tripID, c)
	}
	h.mu.Unlock()

	c.closeSend()
}
