package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"learnloop/internal/cache"
	"learnloop/internal/model"
	"learnloop/internal/repository"
	"learnloop/internal/storage"
)

// HistoryService manages a user's conversation history: listing,
// deletion, and portable export/import files.
type HistoryService struct {
	convRepo  repository.ConversationRepo
	histCache cache.HistoryCache
	uploader  storage.Uploader
}

// NewHistoryService creates a new history service. The uploader is
// optional; without it Export returns the file inline only.
func NewHistoryService(convRepo repository.ConversationRepo, histCache cache.HistoryCache, uploader storage.Uploader) *HistoryService {
	return &HistoryService{
		convRepo:  convRepo,
		histCache: histCache,
		uploader:  uploader,
	}
}

// List returns the user's conversations, cache first.
func (s *HistoryService) List(ctx context.Context, userID string) ([]model.Conversation, error) {
	if s.histCache != nil {
		if conversations, err := s.histCache.GetList(ctx, userID); err == nil && conversations != nil {
			return conversations, nil
		}
	}

	conversations, err := s.convRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conversations == nil {
		conversations = []model.Conversation{}
	}

	if s.histCache != nil {
		if err := s.histCache.SetList(ctx, userID, conversations); err != nil {
			log.Printf("[History] cache set failed: %v", err)
		}
	}
	return conversations, nil
}

// Delete removes one conversation, enforcing ownership.
func (s *HistoryService) Delete(ctx context.Context, userID, conversationID string) error {
	conversation, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conversation == nil {
		return ErrNotFound
	}
	if conversation.UserID != userID {
		return ErrUnauthorized
	}

	if err := s.convRepo.Delete(ctx, conversationID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Clear removes all of the user's conversations and returns the count.
func (s *HistoryService) Clear(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.convRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, userID)
	return deleted, nil
}

// Export builds the portable history file and, when storage is
// configured, uploads it and returns its URL alongside the payload.
func (s *HistoryService) Export(ctx context.Context, userID string) (*model.HistoryExport, string, error) {
	conversations, err := s.List(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	export := &model.HistoryExport{
		Conversations: conversations,
		ExportedAt:    time.Now(),
	}

	if s.uploader == nil {
		return export, "", nil
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, "", err
	}
	key := fmt.Sprintf("exports/%s/%s.json", userID, uuid.NewString())
	url, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Upload failure degrades to inline-only export.
		log.Printf("[History] export upload failed: %v", err)
		return export, "", nil
	}
	return export, url, nil
}

// Import validates a history file and recreates its conversations under
// the importing user with fresh IDs.
func (s *HistoryService) Import(ctx context.Context, userID string, export *model.HistoryExport) (int, error) {
	if export == nil {
		return 0, fmt.Errorf("%w: empty history file", ErrValidation)
	}
	if err := export.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	imported := 0
	for _, c := range export.Conversations {
		conversation := &model.Conversation{
			UserID:   userID,
			Topic:    c.Topic,
			Messages: c.Messages,
		}
		if _, err := s.convRepo.Create(ctx, conversation); err != nil {
			return imported, err
		}
		imported++
	}
	s.invalidate(ctx, userID)
	return imported, nil
}

func (s *HistoryService) invalidate(ctx context.Context, userID string) {
	if s.histCache != nil {
		_ = s.histCache.Invalidate(ctx, userID)
	}
}
