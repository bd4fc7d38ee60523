package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"learnloop/internal/model"
	"learnloop/internal/repository"
	"learnloop/internal/storage"
)

// avatarMaxBytes caps avatar uploads at 2 MiB.
const avatarMaxBytes = 2 << 20

// ProfileService reads and updates user profiles, including avatar
// uploads to object storage.
type ProfileService struct {
	userRepo repository.UserRepo
	uploader storage.Uploader
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repository.UserRepo, uploader storage.Uploader) *ProfileService {
	return &ProfileService{userRepo: userRepo, uploader: uploader}
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Update applies the editable profile fields.
func (s *ProfileService) Update(ctx context.Context, userID string, update *model.ProfileUpdate) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(update.DisplayName); name != "" {
		user.DisplayName = name
	}
	user.Bio = strings.TrimSpace(update.Bio)
	if update.Interests != nil {
		user.Interests = update.Interests
	}
	if update.PhotoURL != "" {
		user.PhotoURL = update.PhotoURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores an avatar image and points the profile at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, contentType string, r io.Reader, size int64) (*model.User, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: avatar storage not configured", ErrValidation)
	}
	if size <= 0 || size > avatarMaxBytes {
		return nil, fmt.Errorf("%w: avatar must be between 1 byte and %d bytes", ErrValidation, avatarMaxBytes)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: avatar must be an image", ErrValidation)
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := "img"
	if i := strings.LastIndex(contentType, "/"); i >= 0 && i < len(contentType)-1 {
		ext = contentType[i+1:]
	}
	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.NewString(), ext)

	url, err := s.uploader.Upload(ctx, key, contentType, r, size)
	if err != nil {
		return nil, err
	}

	user.PhotoURL = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
