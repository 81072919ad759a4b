package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024

	sendBufferSize = 256

	joinCheckTimeout = 5 * time.Second
)

// Client is one authenticated websocket connection. Its ID doubles as
// the exclusion key for HTTP mutations made over the same session.
type Client struct {
	ID     string
	UserID int64

	hub    *Hub
	access AccessChecker
	conn   *websocket.Conn
	send   chan Message

	// rooms is the set of trip ids this client has joined. Guarded by
	// the hub's mutex, not by the client.
	rooms map[string]bool

	// sendMu guards closed so a ping reply or join error can never be
	// queued on a channel the hub has already closed.
	sendMu sync.Mutex
	closed bool
}

func newClient(id string, userID int64, hub *Hub, access AccessChecker, conn *websocket.Conn) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		hub:    hub,
		access: access,
		conn:   conn,
		send:   make(chan Message, sendBufferSize),
		rooms:  make(map[string]bool),
	}
}

// start begins the read and write pumps
func (c *Client) start() {
	go c.writePump()
	go c.readPump()
}

// readPump consumes frames from the connection until it closes, handling
// room membership and ping requests. On exit the client leaves all rooms
// and its departure is announced to each.
func (c *Client) readPump() {
	defer func() {
		left := c.hub.Detach(c)
		for _, tripID := range left {
			c.hub.Publish(tripID, MessageTypeUserLeft, PresenceData{TripID: tripID, UserID: c.UserID}, c.ID)
		}
		c.closeSend()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug().Err(err).Str("connection_id", c.ID).Msg("unexpected websocket close")
			}
			return
		}

		switch msg.Type {
		case MessageTypeJoin:
			c.handleJoin(msg)
		case MessageTypeLeave:
			c.handleLeave(msg)
		case MessageTypeCursorMove:
			c.handleCursorMove(msg)
		case MessageTypeTypingStart:
			c.handleTyping(msg, true)
		case MessageTypeTypingStop:
			c.handleTyping(msg, false)
		case MessageTypePing:
			c.trySend(Message{Type: MessageTypePong})
		}
	}
}

func (c *Client) handleJoin(msg Message) {
	tripID, ok := roomID(msg)
	if !ok {
		c.trySend(Message{Type: MessageTypeError, Data: map[string]string{"message": "tripId is required"}})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), joinCheckTimeout)
	defer cancel()
	if !c.access.CanReadTrip(ctx, tripID, c.UserID) {
		c.trySend(Message{Type: MessageTypeError, Data: map[string]string{"message": "Access denied", "tripId": tripID}})
		return
	}

	c.hub.Subscribe(tripID, c)
	c.hub.Publish(tripID, MessageTypeUserJoined, PresenceData{TripID: tripID, UserID: c.UserID}, c.ID)
}

func (c *Client) handleLeave(msg Message) {
	tripID, ok := roomID(msg)
	if !ok {
		return
	}
	c.hub.Unsubscribe(tripID, c)
	c.hub.Publish(tripID, MessageTypeUserLeft, PresenceData{TripID: tripID, UserID: c.UserID}, c.ID)
}

// handleCursorMove rebroadcasts a cursor position to the rest of the
// room. Frames for rooms the client never joined are ignored, so the
// join-time access check also gates relays.
func (c *Client) handleCursorMove(msg Message) {
	tripID, ok := roomID(msg)
	if !ok || !c.hub.InRoom(tripID, c) {
		return
	}
	data, _ := msg.Data.(map[string]interface{})
	c.hub.Publish(tripID, MessageTypeCursorUpdate, CursorData{
		TripID:    tripID,
		UserID:    c.UserID,
		Position:  data["position"],
		Section:   stringField(data, "section"),
		Timestamp: time.Now().UnixMilli(),
	}, c.ID)
}

// handleTyping relays a typing indicator to the rest of the room
func (c *Client) handleTyping(msg Message, typing bool) {
	tripID, ok := roomID(msg)
	if !ok || !c.hub.InRoom(tripID, c) {
		return
	}
	data, _ := msg.Data.(map[string]interface{})
	c.hub.Publish(tripID, MessageTypeUserTyping, TypingData{
		TripID:  tripID,
		UserID:  c.UserID,
		Section: stringField(data, "section"),
		Typing:  typing,
	}, c.ID)
}

// roomID extracts the trip id from a join/leave frame's data object
func roomID(msg Message) (string, bool) {
	data, ok := msg.Data.(map[string]interface{})
	if !ok {
		return "", false
	}
	tripID, ok := data["tripId"].(string)
	if !ok || tripID == "" {
		return "", false
	}
	return tripID, true
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

// trySend queues a message without blocking; the frame is lost if the
// client's buffer is full or the send channel was already closed.
func (c *Client) trySend(msg Message) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// closeSend closes the send channel exactly once. Closing it makes the
// write pump emit a close frame and tear the connection down.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump writes queued messages and keepalive pings to the connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
