package handler

import (
	"encoding/json"
	"net/http"

	"learnloop/internal/model"
	"learnloop/internal/service"
)

// SurveyHandler handles survey generation endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// GenerateRequest is the request body for survey generation
type GenerateRequest struct {
	Topic string `json:"topic"`
}

// Generate handles POST /v1/surveys
func (h *SurveyHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := h.surveySvc.GenerateQuestions(r.Context(), req.Topic)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

// RefreshOptionsRequest is the request body for dependent-option refresh
type RefreshOptionsRequest struct {
	Topic    string          `json:"topic"`
	Question model.Question  `json:"question"`
	Answers  model.AnswerSet `json:"answers"`
}

// RefreshOptions handles POST /v1/surveys/options
func (h *SurveyHandler) RefreshOptions(w http.ResponseWriter, r *http.Request) {
	var req RefreshOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	options, err := h.surveySvc.RefreshDependentOptions(r.Context(), req.Topic, req.Question, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"options": options})
}
