package realtime

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(id string, userID int64, buffer int) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		send:   make(chan Message, buffer),
		rooms:  make(map[string]bool),
	}
}

func drain(c *Client) []Message {
	var out []Message
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestPublishReachesRoomSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	a := testClient("conn-a", 1, 8)
	b := testClient("conn-b", 2, 8)
	c := testClient("conn-c", 3, 8)

	hub.Subscribe("trip-1", a)
	hub.Subscribe("trip-1", b)
	hub.Subscribe("trip-2", c)

	hub.Publish("trip-1", "trip:item_added", map[string]string{"trip_id": "trip-1"}, "")

	require.Len(t, drain(a), 1)
	require.Len(t, drain(b), 1)
	// No cross-room delivery
	assert.Empty(t, drain(c))
}

func TestPublishExcludesOriginConnection(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	author := testClient("conn-author", 1, 8)
	other := testClient("conn-other", 2, 8)

	hub.Subscribe("trip-1", author)
	hub.Subscribe("trip-1", other)

	hub.Publish("trip-1", "trip:item_added", nil, "conn-author")

	assert.Empty(t, drain(author))
	msgs := drain(other)
	require.Len(t, msgs, 1)
	assert.Equal(t, "trip:item_added", msgs[0].Type)
}

func TestPublishToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Publish("trip-unknown", "trip:updated", nil, "")
	assert.Zero(t, hub.RoomSize("trip-unknown"))
}

func TestSubscribeIdempotent(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := testClient("conn-a", 1, 8)

	hub.Subscribe("trip-1", c)
	hub.Subscribe("trip-1", c)
	assert.Equal(t, 1, hub.RoomSize("trip-1"))

	hub.Publish("trip-1", "trip:updated", nil, "")
	assert.Len(t, drain(c), 1)
}

func TestUnsubscribeEmptiesRoom(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := testClient("conn-a", 1, 8)

	hub.Subscribe("trip-1", c)
	assert.Equal(t, 1, hub.RoomSize("trip-1"))

	hub.Unsubscribe("trip-1", c)
	assert.Zero(t, hub.RoomSize("trip-1"))
	assert.Empty(t, c.rooms)

	// Unsubscribing again is harmless
	hub.Unsubscribe("trip-1", c)

	hub.Publish("trip-1", "trip:updated", nil, "")
	assert.Empty(t, drain(c))
}

func TestDetachLeavesAllRooms(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := testClient("conn-a", 1, 8)
	peer := testClient("conn-b", 2, 8)

	hub.Subscribe("trip-1", c)
	hub.Subscribe("trip-2", c)
	hub.Subscribe("trip-1", peer)

	left := hub.Detach(c)
	assert.ElementsMatch(t, []string{"trip-1", "trip-2"}, left)
	assert.Equal(t, 1, hub.RoomSize("trip-1"))
	assert.Zero(t, hub.RoomSize("trip-2"))
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	slow := testClient("conn-slow", 1, 1)
	fast := testClient("conn-fast", 2, 8)

	hub.Subscribe("trip-1", slow)
	hub.Subscribe("trip-1", fast)

	// The first publish fills the slow client's buffer; the second
	// overflows it and drops the client from the room.
	hub.Publish("trip-1", "trip:updated", nil, "")
	hub.Publish("trip-1", "trip:updated", nil, "")

	assert.Equal(t, 1, hub.RoomSize("trip-1"))
	assert.Len(t, drain(fast), 2)

	// Its send channel is closed so the write pump terminates
	_, open := <-slow.send
	assert.True(t, open) // buffered message still there
	_, open = <-slow.send
	assert.False(t, open)
}

func TestDroppedClientSendIsIgnored(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	slow := testClient("conn-slow", 1, 1)
	hub.Subscribe("trip-1", slow)

	hub.Publish("trip-1", "trip:updated", nil, "")
	hub.Publish("trip-1", "trip:updated", nil, "")
	require.Zero(t, hub.RoomSize("trip-1"))

	// A ping reply arriving after the drop must not hit the closed
	// send channel
	assert.NotPanics(t, func() {
		slow.trySend(Message{Type: MessageTypePong})
	})

	// Only the message buffered before the drop is delivered
	msg, open := <-slow.send
	require.True(t, open)
	assert.Equal(t, "trip:updated", msg.Type)
	_, open = <-slow.send
	assert.False(t, open)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := testClient("conn-a", 1, 1)
	hub.Subscribe("trip-1", c)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish("trip-1", "trip:updated", nil, "")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full client buffer")
	}
}
