package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"learnloop/internal/model"
	"learnloop/internal/recommend"
)

// QuizService generates knowledge checks and grades submissions.
type QuizService struct {
	gen recommend.Generator
}

// NewQuizService creates a new quiz service
func NewQuizService(gen recommend.Generator) *QuizService {
	return &QuizService{gen: gen}
}

// Generate asks the model for a quiz on a topic and stage. A quiz with
// no valid questions is treated as malformed output.
func (s *QuizService) Generate(ctx context.Context, topic, stage string) (*model.Quiz, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}

	out, err := s.gen.Generate(ctx, recommend.TaskQuiz, recommend.QuizPrompt(topic, stage))
	if err != nil {
		return nil, err
	}

	var quiz model.Quiz
	if err := recommend.Decode(out, &quiz); err != nil {
		return nil, err
	}

	valid := make([]model.QuizQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.CorrectAnswer) == "" {
			continue
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, &recommend.MalformedModelOutputError{Raw: out}
	}

	quiz.Topic = topic
	quiz.Stage = stage
	quiz.Questions = valid
	if quiz.Metadata.PassingScore <= 0 || quiz.Metadata.PassingScore > 100 {
		quiz.Metadata.PassingScore = 70
	}
	return &quiz, nil
}

// Grade scores submitted answers against a quiz. Matching ignores case
// and surrounding whitespace; unanswered questions count as wrong.
func (s *QuizService) Grade(quiz *model.Quiz, answers map[string]string) (*model.QuizResult, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrValidation)
	}

	correct := 0
	for _, q := range quiz.Questions {
		given, ok := answers[q.ID]
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(q.CorrectAnswer)) {
			correct++
		}
	}

	total := len(quiz.Questions)
	score := int(math.Round(float64(correct) / float64(total) * 100))
	passed := score >= quiz.Metadata.PassingScore

	result := &model.QuizResult{
		Score:   score,
		Correct: correct,
		Total:   total,
		Passed:  passed,
	}
	if !passed {
		result.Recommendations = quiz.Metadata.Recommendations
	}
	return result, nil
}
