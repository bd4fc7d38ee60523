package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"learnloop/internal/model"
	"learnloop/internal/recommend"
)

// SurveyService generates the adaptive questionnaire for a topic and
// regenerates dependent options as answers arrive.
type SurveyService struct {
	gen recommend.Generator
}

// NewSurveyService creates a new survey service
func NewSurveyService(gen recommend.Generator) *SurveyService {
	return &SurveyService{gen: gen}
}

// GenerateQuestions asks the model for a topic-specific survey. Output
// is decoded tolerantly: either a bare array or a wrapper object with a
// "questions" field. Questions with missing IDs get one assigned;
// questions with an invalid type are dropped rather than failing the
// whole survey.
func (s *SurveyService) GenerateQuestions(ctx context.Context, topic string) ([]model.Question, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}

	out, err := s.gen.Generate(ctx, recommend.TaskSurvey, recommend.SurveyPrompt(topic))
	if err != nil {
		return nil, err
	}

	questions, err := decodeQuestions(out)
	if err != nil {
		return nil, err
	}

	valid := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" || !q.Type.Valid() {
			continue
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if q.Type == model.QuestionTypeRange && q.Step < 1 {
			q.Step = 1
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, &recommend.MalformedModelOutputError{Raw: out}
	}
	return valid, nil
}

// RefreshDependentOptions regenerates the options of a question after
// the answer it depends on changed. The timeline to daily-time
// dependency has a dedicated prompt because the relationship is
// numeric, not thematic.
func (s *SurveyService) RefreshDependentOptions(ctx context.Context, topic string, question model.Question, answers model.AnswerSet) ([]string, error) {
	if question.Type != model.QuestionTypeSelect {
		return nil, fmt.Errorf("%w: only select questions have options", ErrValidation)
	}

	var prompt string
	if question.ID == model.AnswerKeyTimePerDay && question.DependsOn == model.AnswerKeyTimeline {
		prompt = recommend.TimeOptionsPrompt(topic, answers.TimelineDays())
	} else {
		prompt = recommend.DependentOptionsPrompt(topic, question, answers)
	}

	out, err := s.gen.Generate(ctx, recommend.TaskOptions, prompt)
	if err != nil {
		return nil, err
	}

	var options []string
	if err := recommend.Decode(out, &options); err != nil {
		return nil, err
	}

	trimmed := make([]string, 0, len(options))
	for _, o := range options {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	if len(trimmed) == 0 {
		return nil, &recommend.MalformedModelOutputError{Raw: out}
	}
	return trimmed, nil
}

// decodeQuestions accepts both shapes the model produces for surveys.
func decodeQuestions(out string) ([]model.Question, error) {
	var questions []model.Question
	if err := recommend.Decode(out, &questions); err == nil {
		return questions, nil
	}

	var wrapper struct {
		Questions []model.Question `json:"questions"`
	}
	if err := recommend.Decode(out, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Questions, nil
}
