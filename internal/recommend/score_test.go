package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"learnloop/internal/model"
)

func baseCriteria() model.EvaluationCriteria {
	return model.EvaluationCriteria{
		RequiredTerms: []string{"python"},
		MinDuration:   10,
		MaxDuration:   60,
	}
}

func TestScoreRequiredTermInTitle(t *testing.T) {
	v := model.VideoCandidate{Title: "Python Basics", DurationMinutes: 20}
	// +5 title match, +5 duration fit
	assert.Equal(t, 10, ScoreVideo(v, baseCriteria()))
}

func TestScoreRequiredTermInBoth(t *testing.T) {
	v := model.VideoCandidate{
		Title:           "Python Basics",
		Description:     "Learn python from scratch",
		DurationMinutes: 20,
	}
	// +5 title, +3 description, +5 duration
	assert.Equal(t, 13, ScoreVideo(v, baseCriteria()))
}

func TestScoreCaseInsensitive(t *testing.T) {
	criteria := model.EvaluationCriteria{
		RequiredTerms: []string{"PYTHON"},
		MinDuration:   10,
		MaxDuration:   60,
	}
	v := model.VideoCandidate{Title: "python tutorial", DurationMinutes: 20}
	assert.Equal(t, 10, ScoreVideo(v, criteria))
}

func TestScoreRedFlagsSubtract(t *testing.T) {
	criteria := model.EvaluationCriteria{
		RequiredTerms: []string{"python"},
		RedFlags:      []string{"clickbait"},
		MinDuration:   10,
		MaxDuration:   60,
	}
	v := model.VideoCandidate{
		Title:           "Python clickbait compilation",
		Description:     "pure clickbait",
		DurationMinutes: 20,
	}
	// +5 required, -5 red flag title, -3 red flag desc, +5 duration
	assert.Equal(t, 2, ScoreVideo(v, criteria))
}

func TestScoreNeverNegative(t *testing.T) {
	criteria := model.EvaluationCriteria{
		RedFlags:    []string{"spam"},
		MinDuration: 10,
		MaxDuration: 60,
	}
	v := model.VideoCandidate{Title: "spam spam", Description: "spam", DurationMinutes: 5}
	assert.Equal(t, 0, ScoreVideo(v, criteria))
}

func TestScoreDurationBands(t *testing.T) {
	criteria := baseCriteria()

	tooShort := model.VideoCandidate{Title: "python", DurationMinutes: 5}
	inRange := model.VideoCandidate{Title: "python", DurationMinutes: 30}
	tooLong := model.VideoCandidate{Title: "python", DurationMinutes: 90}

	assert.Equal(t, 2, ScoreVideo(tooShort, criteria))  // 5 - 3
	assert.Equal(t, 10, ScoreVideo(inRange, criteria))  // 5 + 5
	assert.Equal(t, 3, ScoreVideo(tooLong, criteria))   // 5 - 2
}

func TestScorePreferredChannels(t *testing.T) {
	criteria := model.EvaluationCriteria{
		PreferredChannels: []string{"freecodecamp"},
		MinDuration:       0,
		MaxDuration:       120,
	}
	v := model.VideoCandidate{
		Title:           "Learn to Code",
		Description:     "A freeCodeCamp production",
		ChannelTitle:    "freeCodeCamp.org",
		DurationMinutes: 60,
	}
	// +3 channel title, +2 description mention, +5 duration
	assert.Equal(t, 10, ScoreVideo(v, criteria))
}

func TestScorePopularityBonuses(t *testing.T) {
	criteria := baseCriteria()
	v := model.VideoCandidate{
		Title:           "python",
		DurationMinutes: 20,
		ViewCount:       50_000,
		LikeCount:       5_000,
	}
	// +5 required, +5 duration, +2 views, +2 likes
	assert.Equal(t, 14, ScoreVideo(v, criteria))

	// Thresholds are strict greater-than.
	v.ViewCount = 10_000
	v.LikeCount = 1_000
	assert.Equal(t, 10, ScoreVideo(v, criteria))
}

func TestScoreEmptyTitleAndDescription(t *testing.T) {
	v := model.VideoCandidate{DurationMinutes: 30, ViewCount: 1_000_000}
	assert.Equal(t, 0, ScoreVideo(v, baseCriteria()))
}

func TestScoreOrderIndependent(t *testing.T) {
	v := model.VideoCandidate{
		Title:           "Python project walkthrough",
		Description:     "hands-on python project, no clickbait here",
		DurationMinutes: 30,
	}
	criteria := model.EvaluationCriteria{
		RequiredTerms: []string{"python", "project", "walkthrough"},
		BonusTerms:    []string{"hands-on", "project"},
		RedFlags:      []string{"clickbait", "reaction"},
		MinDuration:   10,
		MaxDuration:   60,
	}

	want := ScoreVideo(v, criteria)

	reversed := criteria
	reversed.RequiredTerms = []string{"walkthrough", "project", "python"}
	reversed.BonusTerms = []string{"project", "hands-on"}
	reversed.RedFlags = []string{"reaction", "clickbait"}
	assert.Equal(t, want, ScoreVideo(v, reversed))

	rotated := criteria
	rotated.RequiredTerms = []string{"project", "walkthrough", "python"}
	assert.Equal(t, want, ScoreVideo(v, rotated))
}

func TestScoreBonusTerms(t *testing.T) {
	criteria := model.EvaluationCriteria{
		BonusTerms:  []string{"project"},
		MinDuration: 0,
		MaxDuration: 120,
	}
	v := model.VideoCandidate{
		Title:           "Build a project",
		Description:     "full project walkthrough",
		DurationMinutes: 45,
	}
	// +3 bonus title, +2 bonus desc, +5 duration
	assert.Equal(t, 10, ScoreVideo(v, criteria))
}
