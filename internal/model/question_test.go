package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTimeFrames(t *testing.T) {
	frames := CalculateTimeFrames(7, 60)
	assert.Equal(t, 28, frames.TotalVideos)
	assert.Equal(t, 4, frames.VideosPerDay)
	assert.Equal(t, 10, frames.RecommendedDuration) // 7 hours total

	frames = CalculateTimeFrames(5, 30)
	assert.Equal(t, 10, frames.TotalVideos)
	assert.Equal(t, 2, frames.VideosPerDay)
}

func TestCalculateTimeFramesRoundsUp(t *testing.T) {
	// 1 day x 20 minutes = ceil(20/15) = 2 videos.
	frames := CalculateTimeFrames(1, 20)
	assert.Equal(t, 2, frames.TotalVideos)
	assert.Equal(t, 2, frames.VideosPerDay)
}

func TestCalculateTimeFramesRecommendedDurationBands(t *testing.T) {
	assert.Equal(t, 10, CalculateTimeFrames(10, 60).RecommendedDuration)  // 10h
	assert.Equal(t, 20, CalculateTimeFrames(20, 60).RecommendedDuration)  // 20h
	assert.Equal(t, 30, CalculateTimeFrames(30, 60).RecommendedDuration)  // 30h
}

func TestCalculateTimeFramesClampsBadInput(t *testing.T) {
	frames := CalculateTimeFrames(0, -5)
	assert.GreaterOrEqual(t, frames.TotalVideos, 1)
	assert.GreaterOrEqual(t, frames.VideosPerDay, 1)
}

func TestAnswerSetDefaults(t *testing.T) {
	a := AnswerSet{}
	assert.Equal(t, "beginner", a.ExperienceLevel())
	assert.Equal(t, "visual", a.LearningStyle())
	assert.Equal(t, "comprehensive", a.LearningFocus())
	assert.Equal(t, 7, a.TimelineDays())
	assert.Equal(t, 30, a.MinutesPerDay())
	assert.Empty(t, a.Interests())
	assert.Empty(t, a.Goals())
}

func TestAnswerSetParsesValues(t *testing.T) {
	a := AnswerSet{
		"experienceLevel": " advanced ",
		"timeline":        "14",
		"timePerDay":      "45",
		"interests":       "testing, concurrency , ",
	}
	assert.Equal(t, "advanced", a.ExperienceLevel())
	assert.Equal(t, 14, a.TimelineDays())
	assert.Equal(t, 45, a.MinutesPerDay())
	assert.Equal(t, []string{"testing", "concurrency"}, a.Interests())
}

func TestAnswerSetRejectsBadNumbers(t *testing.T) {
	a := AnswerSet{"timeline": "soon", "timePerDay": "-10"}
	assert.Equal(t, 7, a.TimelineDays())
	assert.Equal(t, 30, a.MinutesPerDay())
}

func TestQuestionTypeValid(t *testing.T) {
	assert.True(t, QuestionTypeSelect.Valid())
	assert.True(t, QuestionTypeRange.Valid())
	assert.True(t, QuestionTypeText.Valid())
	assert.False(t, QuestionType("essay").Valid())
}
