package ws

import (
	"log"
	"sync"
)

// Hub tracks live connections per conversation so a streamed reply
// reaches every open tab, not just the one that sent the message.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{} // conversationID -> clients
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.conversationID] == nil {
		h.clients[c.conversationID] = make(map[*Client]struct{})
	}
	h.clients[c.conversationID][c] = struct{}{}
	log.Printf("[WS] client joined conversation %s (%d open)", c.conversationID, len(h.clients[c.conversationID]))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.conversationID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.conversationID)
		}
	}
}

// Broadcast sends an envelope to every client on a conversation. Slow
// clients are skipped rather than blocking the sender.
func (h *Hub) Broadcast(conversationID string, envelope Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[conversationID] {
		c.trySend(envelope)
	}
}
