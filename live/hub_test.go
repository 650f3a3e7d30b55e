package live

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, room string) *Client {
	return &Client{
		Hub:  hub,
		Send: make(chan []byte, 8),
		Room: room,
	}
}

func registered(hub *Hub, room string) func() bool {
	return func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.rooms[room]) > 0
	}
}

func TestBroadcastReachesOnlyItsRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	subscriber := newTestClient(hub, MatchRoom(1))
	bystander := newTestClient(hub, MatchRoom(2))
	hub.Register <- subscriber
	hub.Register <- bystander
	require.Eventually(t, registered(hub, MatchRoom(2)), time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(MatchRoom(1), Message{Type: EventMatchUpdated, Payload: map[string]int{"id": 1}})

	select {
	case raw := <-subscriber.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, EventMatchUpdated, msg.Type)
		assert.Equal(t, MatchRoom(1), msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the broadcast")
	}

	select {
	case <-bystander.Send:
		t.Fatal("bystander received a broadcast for another room")
	default:
	}
}

func TestBroadcastToEmptyRoomIsANoOp(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Must not panic or block without any subscribers.
	hub.BroadcastToRoom(MatchRoom(99), Message{Type: EventMatchUpdated})
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, MatchRoom(1))
	hub.Register <- client
	require.Eventually(t, registered(hub, MatchRoom(1)), time.Second, 5*time.Millisecond)

	hub.Unregister <- client

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.rooms[MatchRoom(1)]
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open, "send channel should be closed after unregister")
}

func TestFullSendBufferDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: MatchRoom(1)}
	hub.Register <- client
	require.Eventually(t, registered(hub, MatchRoom(1)), time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(MatchRoom(1), Message{Type: EventMatchUpdated})
	done := make(chan struct{})
	go func() {
		hub.BroadcastToRoom(MatchRoom(1), Message{Type: EventMatchUpdated})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client buffer")
	}
}
