package handler

import (
	"net/http"

	"learnloop/internal/service"
)

// PathHandler serves the curated learning-path catalog
type PathHandler struct {
	pathSvc *service.PathService
}

// NewPathHandler creates a new path handler
func NewPathHandler(pathSvc *service.PathService) *PathHandler {
	return &PathHandler{pathSvc: pathSvc}
}

// ListCatalog handles GET /v1/paths
func (h *PathHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	paths, err := h.pathSvc.ListCatalog(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"paths": paths})
}
