package model

import (
	"strconv"
	"strings"
)

// QuestionType defines the input kind of a survey question
type QuestionType string

const (
	QuestionTypeSelect QuestionType = "select" // Dropdown, fixed options
	QuestionTypeRange  QuestionType = "range"  // Slider with min/max/step
	QuestionTypeText   QuestionType = "text"   // Free text
)

// Valid reports whether the type is one the survey UI can render
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeSelect, QuestionTypeRange, QuestionTypeText:
		return true
	}
	return false
}

// Question is a single generated survey question. Options may be
// regenerated in place when the question named by DependsOn is answered.
type Question struct {
	ID        string       `json:"id" bson:"id"`
	Question  string       `json:"question" bson:"question"`
	Type      QuestionType `json:"type" bson:"type"`
	Options   []string     `json:"options,omitempty" bson:"options,omitempty"`
	Min       int          `json:"min,omitempty" bson:"min,omitempty"`
	Max       int          `json:"max,omitempty" bson:"max,omitempty"`
	Step      int          `json:"step,omitempty" bson:"step,omitempty"`
	Required  bool         `json:"required" bson:"required"`
	DependsOn string       `json:"dependsOn,omitempty" bson:"dependsOn,omitempty"`
}

// Well-known question IDs the pipeline reads from the answer set.
const (
	AnswerKeyTimeline   = "timeline"
	AnswerKeyTimePerDay = "timePerDay"
	AnswerKeyLevel      = "experienceLevel"
	AnswerKeyStyle      = "learningStyle"
	AnswerKeyFocus      = "learningFocus"
	AnswerKeyInterests  = "interests"
	AnswerKeyGoals      = "goals"
)

// AnswerSet maps question IDs to the scalar answer the user gave.
// Numeric answers are stored as numeric strings. It is built up while
// the survey runs and treated as read-only once the pipeline starts.
type AnswerSet map[string]string

func (a AnswerSet) get(key, def string) string {
	if v, ok := a[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (a AnswerSet) getInt(key string, def int) int {
	if v, ok := a[key]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// ExperienceLevel returns the user's level, defaulting to beginner.
func (a AnswerSet) ExperienceLevel() string { return a.get(AnswerKeyLevel, "beginner") }

// LearningStyle returns the preferred style, defaulting to visual.
func (a AnswerSet) LearningStyle() string { return a.get(AnswerKeyStyle, "visual") }

// LearningFocus returns the focus preference, defaulting to comprehensive.
func (a AnswerSet) LearningFocus() string { return a.get(AnswerKeyFocus, "comprehensive") }

// TimelineDays returns the learning timeline in days, defaulting to 7.
func (a AnswerSet) TimelineDays() int { return a.getInt(AnswerKeyTimeline, 7) }

// MinutesPerDay returns the daily time commitment in minutes, defaulting to 30.
func (a AnswerSet) MinutesPerDay() int { return a.getInt(AnswerKeyTimePerDay, 30) }

// Interests splits the comma-separated interests answer.
func (a AnswerSet) Interests() []string { return splitList(a[AnswerKeyInterests]) }

// Goals splits the comma-separated goals answer.
func (a AnswerSet) Goals() []string { return splitList(a[AnswerKeyGoals]) }

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TimeFrames is the time budget derived from timeline answers.
type TimeFrames struct {
	TotalVideos         int `json:"totalVideos"`
	VideosPerDay        int `json:"videosPerDay"`
	RecommendedDuration int `json:"recommendedDuration"` // hours
}

// AverageVideoMinutes is the assumed average length of a learning video.
const AverageVideoMinutes = 15

// CalculateTimeFrames derives the playlist size from the time budget:
// totalVideos = ceil(totalMinutes / averageVideoLength).
func CalculateTimeFrames(timelineDays, minutesPerDay int) TimeFrames {
	if timelineDays < 1 {
		timelineDays = 1
	}
	if minutesPerDay < 1 {
		minutesPerDay = 1
	}
	totalMinutes := timelineDays * minutesPerDay
	totalVideos := (totalMinutes + AverageVideoMinutes - 1) / AverageVideoMinutes

	totalHours := totalMinutes / 60
	recommended := 30
	if totalHours <= 10 {
		recommended = 10
	} else if totalHours <= 20 {
		recommended = 20
	}

	return TimeFrames{
		TotalVideos:         totalVideos,
		VideosPerDay:        (totalVideos + timelineDays - 1) / timelineDays,
		RecommendedDuration: recommended,
	}
}
