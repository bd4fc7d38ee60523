package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"learnloop/internal/recommend"
	"learnloop/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// fallbackResources is returned alongside quota errors so the client
// can still point the user somewhere useful.
var fallbackResources = []map[string]string{
	{"name": "freeCodeCamp", "url": "https://www.freecodecamp.org"},
	{"name": "Khan Academy", "url": "https://www.khanacademy.org"},
	{"name": "MIT OpenCourseWare", "url": "https://ocw.mit.edu"},
}

// writeServiceError maps service-layer errors to HTTP responses. Quota
// exhaustion gets a 429 with static fallback resources; an exhausted
// search gets a 404 listing what was tried.
func writeServiceError(w http.ResponseWriter, err error) {
	var noResults *recommend.NoResultsError
	var malformed *recommend.MalformedModelOutputError

	switch {
	case errors.Is(err, service.ErrQuotaExceeded):
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":     "service is over its daily quota, try again later",
			"resources": fallbackResources,
		})
	case errors.Is(err, service.ErrUpstreamTimeout):
		writeError(w, http.StatusGatewayTimeout, "upstream service timed out, try again")
	case errors.Is(err, service.ErrSafetyBlocked):
		writeError(w, http.StatusUnprocessableEntity, "request was blocked by the content safety filter")
	case errors.As(err, &noResults):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "no videos found for this topic",
			"queries": noResults.Queries,
		})
	case errors.As(err, &malformed):
		writeError(w, http.StatusBadGateway, "model returned unusable output, try again")
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "you do not have access to this resource")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
