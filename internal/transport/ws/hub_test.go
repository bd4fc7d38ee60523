package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(conversationID string) *Client {
	return &Client{
		send:           make(chan Envelope, 8),
		done:           make(chan struct{}),
		conversationID: conversationID,
	}
}

func drain(c *Client) []Envelope {
	var out []Envelope
	for {
		select {
		case e := <-c.send:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestBroadcastReachesAllClientsOnConversation(t *testing.T) {
	hub := NewHub()
	tab1 := newTestClient("conv-1")
	tab2 := newTestClient("conv-1")
	other := newTestClient("conv-2")
	hub.register(tab1)
	hub.register(tab2)
	hub.register(other)

	hub.Broadcast("conv-1", Envelope{Type: "chunk", Content: "hello"})
	hub.Broadcast("conv-1", Envelope{Type: "done", Content: "m1"})

	for _, c := range []*Client{tab1, tab2} {
		got := drain(c)
		require.Len(t, got, 2)
		assert.Equal(t, "chunk", got[0].Type)
		assert.Equal(t, "hello", got[0].Content)
		assert.Equal(t, "done", got[1].Type)
	}
	assert.Empty(t, drain(other))
}

func TestBroadcastSkipsUnregisteredClient(t *testing.T) {
	hub := NewHub()
	c := newTestClient("conv-1")
	hub.register(c)
	hub.unregister(c)

	hub.Broadcast("conv-1", Envelope{Type: "chunk", Content: "late"})
	assert.Empty(t, drain(c))
}

func TestBroadcastDropsForDepartedClient(t *testing.T) {
	hub := NewHub()
	c := newTestClient("conv-1")
	hub.register(c)
	close(c.done)

	// Teardown signalled but not yet unregistered: the envelope is
	// dropped instead of blocking or panicking.
	hub.Broadcast("conv-1", Envelope{Type: "chunk", Content: "late"})
	assert.Empty(t, drain(c))
}
