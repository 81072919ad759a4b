package realtime

// Client-to-server and connection lifecycle message types. Trip mutation
// event types are defined alongside the operations that emit them in the
// trip package.
const (
	MessageTypeConnected = "connected"
	MessageTypeJoin      = "trip:join"
	MessageTypeLeave     = "trip:leave"
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
	MessageTypeError     = "error"

	MessageTypeUserJoined = "user_joined"
	MessageTypeUserLeft   = "user_left"

	// Ephemeral editing signals, relayed to the sender's room without
	// touching the trip document
	MessageTypeCursorMove   = "trip:cursor_move"
	MessageTypeCursorUpdate = "trip:cursor_update"
	MessageTypeTypingStart  = "trip:typing_start"
	MessageTypeTypingStop   = "trip:typing_stop"
	MessageTypeUserTyping   = "trip:user_typing"
)

// Message is the envelope for every frame in both directions
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// RoomRequest is the payload of trip:join and trip:leave frames
type RoomRequest struct {
	TripID string `json:"tripId"`
}

// ConnectedData is sent once, immediately after a successful upgrade.
// Clients echo ConnectionID in the X-Connection-ID header on HTTP
// mutations so their own changes are not broadcast back to them.
type ConnectedData struct {
	ConnectionID string `json:"connectionId"`
	UserID       int64  `json:"userId"`
}

// PresenceData announces a user entering or leaving a trip room
type PresenceData struct {
	TripID string `json:"tripId"`
	UserID int64  `json:"userId"`
}

// CursorData relays a collaborator's cursor position to the rest of the
// room while a trip is being edited. Position is client-defined.
type CursorData struct {
	TripID    string      `json:"tripId"`
	UserID    int64       `json:"userId"`
	Position  interface{} `json:"position,omitempty"`
	Section   string      `json:"section,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// TypingData is the typing indicator relayed to a trip room
type TypingData struct {
	TripID  string `json:"tripId"`
	UserID  int64  `json:"userId"`
	Section string `json:"section,omitempty"`
	Typing  bool   `json:"typing"`
}
