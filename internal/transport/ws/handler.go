package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"learnloop/internal/service"
	"learnloop/internal/transport/rest/middleware"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 16 * 1024

	// chunkRunes is the streaming granularity for assistant replies.
	chunkRunes = 48

	// turnTimeout bounds one model turn regardless of client patience.
	turnTimeout = 2 * time.Minute
)

// Envelope is the wire format in both directions.
//
// Client to server: {"type":"message","content":"..."} or {"type":"stop"}.
// Server to client: type is "chunk", "done" or "error".
type Envelope struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// Handler upgrades chat connections and streams assistant replies.
type Handler struct {
	hub      *Hub
	chatSvc  *service.ChatService
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler
func NewHandler(hub *Hub, chatSvc *service.ChatService) *Handler {
	return &Handler{
		hub:     hub,
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Client is one live websocket connection bound to a conversation.
type Client struct {
	conn           *websocket.Conn
	send           chan Envelope
	done           chan struct{}
	userID         string
	conversationID string

	// stopped is set by a stop frame and cleared when the next message
	// turn starts.
	stopped atomic.Bool
}

// trySend drops the envelope if the client is gone or its buffer is
// full. The send channel is never closed; done signals teardown so a
// turn finishing after disconnect cannot panic.
func (c *Client) trySend(envelope Envelope) {
	select {
	case <-c.done:
	case c.send <- envelope:
	default:
	}
}

// ServeWS handles GET /v1/ws/conversations/{id}. Auth runs before the
// upgrade via the token query parameter.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	conversationID := mux.Vars(r)["id"]

	// Ownership check before the upgrade so bad requests get a real
	// HTTP status instead of a dropped socket.
	if _, err := h.chatSvc.GetConversation(r.Context(), userID, conversationID); err != nil {
		http.Error(w, `{"error":"conversation not found"}`, http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	client := &Client{
		conn:           conn,
		send:           make(chan Envelope, 64),
		done:           make(chan struct{}),
		userID:         userID,
		conversationID: conversationID,
	}
	h.hub.register(client)

	go h.writePump(client)
	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.unregister(c)
		c.conn.Close()
		close(c.done)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] read error: %v", err)
			}
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			c.trySend(Envelope{Type: "error", Content: "invalid frame"})
			continue
		}

		switch envelope.Type {
		case "stop":
			c.stopped.Store(true)
		case "message":
			c.stopped.Store(false)
			go h.runTurn(c, envelope.Content)
		default:
			c.trySend(Envelope{Type: "error", Content: "unknown frame type"})
		}
	}
}

// runTurn executes one chat turn and streams the reply in chunks to
// every open connection on the conversation, honoring the originating
// client's stop flag between chunks. Errors go to the sender only.
func (h *Handler) runTurn(c *Client, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
	defer cancel()

	reply, err := h.chatSvc.SendMessage(ctx, c.userID, c.conversationID, content)
	if err != nil {
		c.trySend(Envelope{Type: "error", Content: err.Error()})
		return
	}

	runes := []rune(reply.Content)
	for i := 0; i < len(runes); i += chunkRunes {
		if c.stopped.Load() {
			break
		}
		end := i + chunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		h.hub.Broadcast(c.conversationID, Envelope{Type: "chunk", Content: string(runes[i:end])})
	}
	h.hub.Broadcast(c.conversationID, Envelope{Type: "done", Content: reply.ID})
}

func (h *Handler) writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case envelope := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(envelope); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
