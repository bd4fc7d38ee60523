package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"learnloop/internal/model"
	"learnloop/internal/recommend"
	"learnloop/internal/repository"
)

// PlaylistService runs the recommendation pipeline and persists the
// outcome as a saved path.
type PlaylistService struct {
	pipeline *recommend.Pipeline
	pathRepo repository.PathRepo
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(pipeline *recommend.Pipeline, pathRepo repository.PathRepo) *PlaylistService {
	return &PlaylistService{pipeline: pipeline, pathRepo: pathRepo}
}

// Create runs the full pipeline for a topic and answer set and saves
// the result under the user. A nil answer set runs with defaults.
func (s *PlaylistService) Create(ctx context.Context, userID, topic string, answers model.AnswerSet) (*model.SavedPath, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}
	if answers == nil {
		answers = model.AnswerSet{}
	}

	result, err := s.pipeline.Run(ctx, topic, answers)
	if err != nil {
		return nil, err
	}

	path := &model.SavedPath{
		UserID:   userID,
		Topic:    topic,
		Profile:  result.Profile,
		Playlist: result.Playlist,
		Roadmap:  result.Roadmap,
	}
	id, err := s.pathRepo.SavePath(ctx, path)
	if err != nil {
		return nil, err
	}
	path.ID = id

	log.Printf("[Playlist] created %s for user %s: %d videos over %d days",
		id, userID, len(path.Playlist), path.Roadmap.TimelineDays)
	return path, nil
}

// Get returns a saved path, enforcing ownership.
func (s *PlaylistService) Get(ctx context.Context, userID, id string) (*model.SavedPath, error) {
	path, err := s.pathRepo.GetSavedByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, ErrNotFound
	}
	if path.UserID != userID {
		return nil, ErrUnauthorized
	}
	return path, nil
}

// ListForUser returns all of a user's saved paths, newest first.
func (s *PlaylistService) ListForUser(ctx context.Context, userID string) ([]model.SavedPath, error) {
	return s.pathRepo.GetSavedByUserID(ctx, userID)
}

// Delete removes a saved path, enforcing ownership.
func (s *PlaylistService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.pathRepo.DeleteSaved(ctx, id)
}
