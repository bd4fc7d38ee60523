package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"learnloop/internal/model"
	"learnloop/internal/service"
	"learnloop/internal/transport/rest/middleware"
)

// PlaylistHandler handles playlist creation and saved-path access
type PlaylistHandler struct {
	playlistSvc *service.PlaylistService
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(playlistSvc *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistSvc: playlistSvc}
}

// CreatePlaylistRequest is the request body for a pipeline run
type CreatePlaylistRequest struct {
	Topic   string          `json:"topic"`
	Answers model.AnswerSet `json:"answers"`
}

// Create handles POST /v1/playlists
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	path, err := h.playlistSvc.Create(r.Context(), userID, req.Topic, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, path)
}

// List handles GET /v1/playlists
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	paths, err := h.playlistSvc.ListForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if paths == nil {
		paths = []model.SavedPath{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"playlists": paths})
}

// Get handles GET /v1/playlists/{id}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := mux.Vars(r)["id"]

	path, err := h.playlistSvc.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, path)
}

// Delete handles DELETE /v1/playlists/{id}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.playlistSvc.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
