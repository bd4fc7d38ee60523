package handler

import (
	"encoding/json"
	"net/http"

	"learnloop/internal/model"
	"learnloop/internal/service"
)

// QuizHandler handles quiz generation and grading
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// GenerateQuizRequest is the request body for quiz generation
type GenerateQuizRequest struct {
	Topic string `json:"topic"`
	Stage string `json:"stage"`
}

// Generate handles POST /v1/quizzes
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := h.quizSvc.Generate(r.Context(), req.Topic, req.Stage)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// GradeRequest carries the quiz back with the user's answers. Quizzes
// are not persisted server-side, so grading is stateless.
type GradeRequest struct {
	Quiz    model.Quiz        `json:"quiz"`
	Answers map[string]string `json:"answers"`
}

// Grade handles POST /v1/quizzes/grade
func (h *QuizHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.quizSvc.Grade(&req.Quiz, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
