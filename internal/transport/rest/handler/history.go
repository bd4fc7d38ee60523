package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"learnloop/internal/model"
	"learnloop/internal/service"
	"learnloop/internal/transport/rest/middleware"
)

// HistoryHandler handles conversation-history endpoints
type HistoryHandler struct {
	historySvc *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historySvc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// List handles GET /v1/conversations
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	conversations, err := h.historySvc.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversations": conversations})
}

// Delete handles DELETE /v1/conversations/{id}
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.historySvc.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Clear handles POST /v1/conversations/clear
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	deleted, err := h.historySvc.Clear(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

// Export handles GET /v1/conversations/export
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	export, url, err := h.historySvc.Export(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]any{"history": export}
	if url != "" {
		resp["url"] = url
	}
	writeJSON(w, http.StatusOK, resp)
}

// Import handles POST /v1/conversations/import
func (h *HistoryHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var export model.HistoryExport
	if err := json.NewDecoder(r.Body).Decode(&export); err != nil {
		writeError(w, http.StatusBadRequest, "invalid history file")
		return
	}

	imported, err := h.historySvc.Import(r.Context(), userID, &export)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": imported})
}
