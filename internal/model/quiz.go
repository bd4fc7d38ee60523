package model

// QuizQuestion is a single generated quiz item.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"` // "multiple-choice" or "true-false"
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizMetadata holds grading parameters returned with a quiz.
type QuizMetadata struct {
	PassingScore    int      `json:"passingScore"` // percentage
	Recommendations []string `json:"recommendations,omitempty"`
}

// Quiz is a generated knowledge check for a topic and learning stage.
type Quiz struct {
	Topic     string         `json:"topic"`
	Stage     string         `json:"stage,omitempty"`
	Questions []QuizQuestion `json:"questions"`
	Metadata  QuizMetadata   `json:"metadata"`
}

// QuizResult is the graded outcome of a submitted quiz.
type QuizResult struct {
	Score           int      `json:"score"` // percentage, rounded
	Correct         int      `json:"correct"`
	Total           int      `json:"total"`
	Passed          bool     `json:"passed"`
	Recommendations []string `json:"recommendations,omitempty"`
}
