package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfadel/tripcollab/internal/auth"
)

// allowAccess grants or denies every room join
type allowAccess struct {
	allow bool
}

func (a allowAccess) CanReadTrip(context.Context, string, int64) bool {
	return a.allow
}

func newTestServer(t *testing.T, access AccessChecker) (*httptest.Server, *auth.TokenManager, *Hub) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	hub := NewHub(zerolog.Nop())
	h := NewHandler(hub, tokens, access, zerolog.Nop(), nil)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, tokens, hub
}

func wsURL(srv *httptest.Server, token string) string {
	u := "ws" + strings.TrimPrefix(srv.URL, "http")
	if token != "" {
		u += "?token=" + token
	}
	return u
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestConnectRequiresToken(t *testing.T) {
	srv, _, _ := newTestServer(t, allowAccess{allow: true})

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConnectRejectsInvalidToken(t *testing.T) {
	srv, _, _ := newTestServer(t, allowAccess{allow: true})

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "not-a-jwt"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConnectSendsConnectionID(t *testing.T) {
	srv, tokens, _ := newTestServer(t, allowAccess{allow: true})
	token, err := tokens.Issue(42)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeConnected, msg.Type)

	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["connectionId"])
	assert.EqualValues(t, 42, data["userId"])
}

func TestJoinAuthorizedRoom(t *testing.T) {
	srv, tokens, hub := newTestServer(t, allowAccess{allow: true})

	tokenA, err := tokens.Issue(1)
	require.NoError(t, err)
	tokenB, err := tokens.Issue(2)
	require.NoError(t, err)

	connA, _, err := websocket.DefaultDialer.Dial(wsURL(srv, tokenA), nil)
	require.NoError(t, err)
	defer connA.Close()
	readMessage(t, connA) // connected

	require.NoError(t, connA.WriteJSON(Message{Type: MessageTypeJoin, Data: map[string]string{"tripId": "trip-1"}}))

	// Wait for the subscription to land
	require.Eventually(t, func() bool {
		return hub.RoomSize("trip-1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	connB, _, err := websocket.DefaultDialer.Dial(wsURL(srv, tokenB), nil)
	require.NoError(t, err)
	defer connB.Close()
	readMessage(t, connB) // connected

	require.NoError(t, connB.WriteJSON(Message{Type: MessageTypeJoin, Data: map[string]string{"tripId": "trip-1"}}))

	// The first client sees the second one arrive
	msg := readMessage(t, connA)
	assert.Equal(t, MessageTypeUserJoined, msg.Type)
	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, data["userId"])
}

func TestJoinDeniedWithoutAccess(t *testing.T) {
	srv, tokens, hub := newTestServer(t, allowAccess{allow: false})
	token, err := tokens.Issue(1)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn) // connected

	require.NoError(t, conn.WriteJSON(Message{Type: MessageTypeJoin, Data: map[string]string{"tripId": "trip-1"}}))

	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeError, msg.Type)
	assert.Zero(t, hub.RoomSize("trip-1"))
}

// joinedPair connects users 1 and 2, joins both to trip-1 and consumes
// the handshake and presence frames, leaving both streams quiet.
func joinedPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()
	srv, tokens, hub := newTestServer(t, allowAccess{allow: true})

	tokenA, err := tokens.Issue(1)
	require.NoError(t, err)
	tokenB, err := tokens.Issue(2)
	require.NoError(t, err)

	connA, _, err := websocket.DefaultDialer.Dial(wsURL(srv, tokenA), nil)
	require.NoError(t, err)
	t.Cleanup(func() { connA.Close() })
	readMessage(t, connA) // connected

	require.NoError(t, connA.WriteJSON(Message{Type: MessageTypeJoin, Data: map[string]string{"tripId": "trip-1"}}))
	require.Eventually(t, func() bool {
		return hub.RoomSize("trip-1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	connB, _, err := websocket.DefaultDialer.Dial(wsURL(srv, tokenB), nil)
	require.NoError(t, err)
	t.Cleanup(func() { connB.Close() })
	readMessage(t, connB) // connected

	require.NoError(t, connB.WriteJSON(Message{Type: MessageTypeJoin, Data: map[string]string{"tripId": "trip-1"}}))
	msg := readMessage(t, connA)
	require.Equal(t, MessageTypeUserJoined, msg.Type)

	return connA, connB
}

func TestCursorMoveRelaysToRoom(t *testing.T) {
	connA, connB := joinedPair(t)

	require.NoError(t, connB.WriteJSON(Message{
		Type: MessageTypeCursorMove,
		Data: map[string]interface{}{
			"tripId":   "trip-1",
			"position": map[string]int{"day": 2, "index": 1},
			"section":  "itinerary",
		},
	}))

	msg := readMessage(t, connA)
	assert.Equal(t, MessageTypeCursorUpdate, msg.Type)
	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, data["userId"])
	assert.Equal(t, "itinerary", data["section"])
	assert.NotZero(t, data["timestamp"])
}

func TestTypingIndicatorRelaysStartAndStop(t *testing.T) {
	connA, connB := joinedPair(t)

	require.NoError(t, connB.WriteJSON(Message{Type: MessageTypeTypingStart, Data: map[string]string{"tripId": "trip-1", "section": "comments"}}))
	msg := readMessage(t, connA)
	assert.Equal(t, MessageTypeUserTyping, msg.Type)
	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, data["userId"])
	assert.Equal(t, "comments", data["section"])
	assert.Equal(t, true, data["typing"])

	require.NoError(t, connB.WriteJSON(Message{Type: MessageTypeTypingStop, Data: map[string]string{"tripId": "trip-1", "section": "comments"}}))
	msg = readMessage(t, connA)
	assert.Equal(t, MessageTypeUserTyping, msg.Type)
	data, ok = msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["typing"])
}

func TestRelayIgnoredOutsideRoom(t *testing.T) {
	srv, tokens, hub := newTestServer(t, allowAccess{allow: true})

	tokenA, err := tokens.Issue(1)
	require.NoError(t, err)
	tokenB, err := tokens.Issue(2)
	require.NoError(t, err)

	connA, _, err := websocket.DefaultDialer.Dial(wsURL(srv, tokenA), nil)
	require.NoError(t, err)
	defer connA.Close()
	readMessage(t, connA) // connected

	require.NoError(t, connA.WriteJSON(Message{Type: MessageTypeJoin, Data: map[string]string{"tripId": "trip-1"}}))
	require.Eventually(t, func() bool {
		return hub.RoomSize("trip-1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	connB, _, err := websocket.DefaultDialer.Dial(wsURL(srv, tokenB), nil)
	require.NoError(t, err)
	defer connB.Close()
	readMessage(t, connB) // connected

	// A cursor frame for a room the sender never joined is dropped.
	// The join right after proves it: the first thing the room sees
	// from this connection is the arrival, not the cursor.
	require.NoError(t, connB.WriteJSON(Message{Type: MessageTypeCursorMove, Data: map[string]string{"tripId": "trip-1", "section": "itinerary"}}))
	require.NoError(t, connB.WriteJSON(Message{Type: MessageTypeJoin, Data: map[string]string{"tripId": "trip-1"}}))

	msg := readMessage(t, connA)
	assert.Equal(t, MessageTypeUserJoined, msg.Type)
}

func TestPingPong(t *testing.T) {
	srv, tokens, _ := newTestServer(t, allowAccess{allow: true})
	token, err := tokens.Issue(1)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn) // connected

	require.NoError(t, conn.WriteJSON(Message{Type: MessageTypePing}))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypePong, msg.Type)
}
