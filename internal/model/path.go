package model

import "time"

// LearningPath is a curated catalog entry shown before a user starts a
// personalized run.
type LearningPath struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Category    string `json:"category" bson:"category"`
	Duration    string `json:"duration" bson:"duration"`
	Level       string `json:"level" bson:"level"`
}

// SavedPath is a completed pipeline run persisted for a user: the
// playlist, the roadmap narrative and the profile used to build them.
type SavedPath struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"userId"`
	Topic     string    `json:"topic" bson:"topic"`
	Profile   string    `json:"profile,omitempty" bson:"profile,omitempty"`
	Playlist  Playlist  `json:"playlist" bson:"playlist"`
	Roadmap   Roadmap   `json:"roadmap" bson:"roadmap"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
