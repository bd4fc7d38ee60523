package model

import "time"

// VideoCandidate is a search result considered for a playlist. The
// relevance score is computed once, when the candidate enters the
// pipeline, and never recomputed.
type VideoCandidate struct {
	ID              string    `json:"id" bson:"id"`
	Title           string    `json:"title" bson:"title"`
	Description     string    `json:"description" bson:"description"`
	ChannelTitle    string    `json:"channelTitle" bson:"channelTitle"`
	PublishedAt     time.Time `json:"publishedAt" bson:"publishedAt"`
	DurationMinutes int       `json:"durationMinutes" bson:"durationMinutes"`
	ViewCount       int64     `json:"viewCount" bson:"viewCount"`
	LikeCount       int64     `json:"likeCount" bson:"likeCount"`
	URL             string    `json:"url" bson:"url"`
	Thumbnail       string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	RelevanceScore  int       `json:"relevanceScore" bson:"relevanceScore"`
}

// EvaluationCriteria is produced once per pipeline run by the model and
// consumed read-only by the scorer for every candidate in that run.
type EvaluationCriteria struct {
	RequiredTerms     []string `json:"required_terms" bson:"requiredTerms"`
	BonusTerms        []string `json:"bonus_terms" bson:"bonusTerms"`
	RedFlags          []string `json:"red_flags" bson:"redFlags"`
	MinDuration       int      `json:"min_duration" bson:"minDuration"` // minutes
	MaxDuration       int      `json:"max_duration" bson:"maxDuration"` // minutes
	PreferredChannels []string `json:"preferred_channels" bson:"preferredChannels"`
}

// Normalize repairs the ranges a model sometimes returns.
func (c *EvaluationCriteria) Normalize() {
	if c.MinDuration < 0 {
		c.MinDuration = 0
	}
	if c.MaxDuration <= 0 {
		c.MaxDuration = 60
	}
	if c.MaxDuration < c.MinDuration {
		c.MinDuration, c.MaxDuration = c.MaxDuration, c.MinDuration
	}
}

// Playlist is an ordered sequence of candidates, strictly non-increasing
// by relevance score, with no duplicate IDs.
type Playlist []VideoCandidate

// TotalMinutes sums the durations of all entries.
func (p Playlist) TotalMinutes() int {
	total := 0
	for _, v := range p {
		total += v.DurationMinutes
	}
	return total
}

// Roadmap is the narrated multi-day study plan generated after the
// playlist. The narrative is accepted verbatim; the only invariant is
// that it is non-empty.
type Roadmap struct {
	Topic        string `json:"topic" bson:"topic"`
	TimelineDays int    `json:"timelineDays" bson:"timelineDays"`
	VideosPerDay int    `json:"videosPerDay" bson:"videosPerDay"`
	Narrative    string `json:"narrative" bson:"narrative"`
}
