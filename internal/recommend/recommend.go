// Package recommend implements the survey-driven recommendation
// pipeline: prompt building, model-output recovery, query synthesis,
// video scoring, playlist assembly and roadmap generation.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"learnloop/internal/model"
)

// Task names the purpose of a model call so the client can pick the
// model configured for it.
type Task string

const (
	TaskSurvey   Task = "survey"
	TaskOptions  Task = "options"
	TaskProfile  Task = "profile"
	TaskCriteria Task = "criteria"
	TaskQueries  Task = "queries"
	TaskRoadmap  Task = "roadmap"
	TaskQuiz     Task = "quiz"
	TaskChat     Task = "chat"
)

// Generator is the language-model capability the pipeline depends on.
type Generator interface {
	Generate(ctx context.Context, task Task, prompt string) (string, error)
}

// VideoSearcher is the video-search capability the pipeline depends on.
type VideoSearcher interface {
	Search(ctx context.Context, query string) ([]model.VideoCandidate, error)
}

// MalformedModelOutputError is returned when every JSON recovery pass
// failed. Raw carries the full model output for diagnostics.
type MalformedModelOutputError struct {
	Raw string
}

func (e *MalformedModelOutputError) Error() string {
	preview := e.Raw
	if len(preview) > 120 {
		preview = preview[:120] + "..."
	}
	return fmt.Sprintf("malformed model output: no parseable JSON found in %q", preview)
}

// NoResultsError is returned when the search pipeline produced zero
// usable candidates, including after the fallback round. Queries lists
// everything that was attempted.
type NoResultsError struct {
	Queries []string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no videos found after %d queries (%s)",
		len(e.Queries), strings.Join(e.Queries, "; "))
}
