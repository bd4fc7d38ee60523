package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/model"
	"learnloop/internal/recommend"
)

type cannedGenerator struct {
	output string
	err    error
}

func (g *cannedGenerator) Generate(context.Context, recommend.Task, string) (string, error) {
	return g.output, g.err
}

func TestQuizGenerateParsesAndDefaults(t *testing.T) {
	gen := &cannedGenerator{output: "```json\n" + `{
		"questions": [
			{"question": "Is Go compiled?", "type": "true-false", "correctAnswer": "true"},
			{"question": "", "correctAnswer": "skip me"},
			{"id": "q2", "question": "What declares a variable?", "type": "multiple-choice",
			 "options": ["var", "def", "let", "dim"], "correctAnswer": "var"}
		],
		"metadata": {"passingScore": 0}
	}` + "\n```"}

	svc := NewQuizService(gen)
	quiz, err := svc.Generate(context.Background(), "Go", "")
	require.NoError(t, err)

	require.Len(t, quiz.Questions, 2) // blank question dropped
	assert.NotEmpty(t, quiz.Questions[0].ID)
	assert.Equal(t, "q2", quiz.Questions[1].ID)
	assert.Equal(t, 70, quiz.Metadata.PassingScore) // invalid score defaulted
	assert.Equal(t, "Go", quiz.Topic)
}

func TestQuizGenerateEmptyTopic(t *testing.T) {
	svc := NewQuizService(&cannedGenerator{})
	_, err := svc.Generate(context.Background(), "  ", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQuizGenerateUnusableOutput(t *testing.T) {
	svc := NewQuizService(&cannedGenerator{output: "no questions here"})
	_, err := svc.Generate(context.Background(), "Go", "")

	var malformed *recommend.MalformedModelOutputError
	assert.ErrorAs(t, err, &malformed)
}

func gradeQuiz() *model.Quiz {
	return &model.Quiz{
		Questions: []model.QuizQuestion{
			{ID: "q1", CorrectAnswer: "var"},
			{ID: "q2", CorrectAnswer: "true"},
			{ID: "q3", CorrectAnswer: "interface"},
		},
		Metadata: model.QuizMetadata{
			PassingScore:    70,
			Recommendations: []string{"review the basics"},
		},
	}
}

func TestQuizGradePass(t *testing.T) {
	svc := NewQuizService(&cannedGenerator{})

	result, err := svc.Grade(gradeQuiz(), map[string]string{
		"q1": " VAR ", // case and whitespace insensitive
		"q2": "true",
		"q3": "interface",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Recommendations)
}

func TestQuizGradeFailCarriesRecommendations(t *testing.T) {
	svc := NewQuizService(&cannedGenerator{})

	result, err := svc.Grade(gradeQuiz(), map[string]string{"q1": "var"})
	require.NoError(t, err)
	assert.Equal(t, 33, result.Score) // round(1/3 * 100)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 3, result.Total)
	assert.False(t, result.Passed)
	assert.Equal(t, []string{"review the basics"}, result.Recommendations)
}

func TestQuizGradeRounding(t *testing.T) {
	svc := NewQuizService(&cannedGenerator{})
	quiz := gradeQuiz()

	result, err := svc.Grade(quiz, map[string]string{"q1": "var", "q2": "true"})
	require.NoError(t, err)
	assert.Equal(t, 67, result.Score) // round(2/3 * 100)
}

func TestQuizGradeEmptyQuiz(t *testing.T) {
	svc := NewQuizService(&cannedGenerator{})
	_, err := svc.Grade(&model.Quiz{}, nil)
	assert.ErrorIs(t, err, ErrValidation)
}
