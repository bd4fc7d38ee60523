package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"learnloop/internal/service"
	"learnloop/internal/transport/rest/middleware"
)

// ChatHandler handles the REST side of conversations. Streaming replies
// go over the websocket endpoint instead.
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// StartConversationRequest is the request body for a new conversation
type StartConversationRequest struct {
	Topic string `json:"topic"`
}

// Start handles POST /v1/conversations
func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conversation, err := h.chatSvc.StartConversation(r.Context(), userID, req.Topic)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conversation)
}

// Get handles GET /v1/conversations/{id}
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := mux.Vars(r)["id"]

	conversation, err := h.chatSvc.GetConversation(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}

// SendMessageRequest is the request body for a chat turn
type SendMessageRequest struct {
	Content string `json:"content"`
}

// Send handles POST /v1/conversations/{id}/messages
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := mux.Vars(r)["id"]

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.chatSvc.SendMessage(r.Context(), userID, id, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
