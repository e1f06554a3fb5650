package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"tradefeed/internal/models"
	"tradefeed/internal/repositories"

	"go.uber.org/zap"
)

// ErrCannotFollowSelf is returned when a user tries to follow themselves.
var ErrCannotFollowSelf = errors.New("cannot follow yourself")

// UserService provides profile and follow operations.
type UserService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	media      MediaStore
	events     EventPublisher
	logger     *zap.Logger
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	media MediaStore,
	events EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		media:      media,
		events:     events,
		logger:     logger,
	}
}

// UpdateProfileInput carries the fields of a profile update. A present
// Optional holding nil clears the column.
type UpdateProfileInput struct {
	Username     models.Optional[string]
	Firstname    models.Optional[*string]
	Lastname     models.Optional[*string]
	Bio          models.Optional[*string]
	ProfileImage models.Optional[*multipart.FileHeader]
}

// Profile returns a user with post and follow counts.
func (s *UserService) Profile(ctx context.Context, id string) (*models.UserWith, error) {
	return s.userRepo.FindWithCounts(ctx, id)
}

// UpdateProfile applies in to the user and returns the refreshed profile.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*models.UserWith, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username, ok := in.Username.Get(); ok {
		user.Username = username
	}
	if v, ok := in.Firstname.Get(); ok {
		user.Firstname = deref(v)
	}
	if v, ok := in.Lastname.Get(); ok {
		user.Lastname = deref(v)
	}
	if v, ok := in.Bio.Get(); ok {
		user.Bio = v
	}
	previous := user.ProfileImage
	var stored *string
	if fh, ok := in.ProfileImage.Get(); ok {
		if fh == nil {
			user.ProfileImage = nil
		} else {
			rel, err := s.media.Save("profile_images", fh)
			if err != nil {
				return nil, fmt.Errorf("failed to store profile image: %w", err)
			}
			stored = &rel
			user.ProfileImage = stored
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if stored != nil {
			discardMedia(s.logger, s.media, *stored)
		}
		return nil, err
	}
	// The old image is only removed once nothing references it.
	if previous != nil && (user.ProfileImage == nil || *user.ProfileImage != *previous) {
		discardMedia(s.logger, s.media, *previous)
	}
	return s.userRepo.FindWithCounts(ctx, id)
}

// ToggleFollow follows or unfollows targetID and reports whether the
// follow exists afterwards.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, targetID string) (bool, error) {
	if followerID == targetID {
		return false, ErrCannotFollowSelf
	}
	following, err := s.followRepo.Toggle(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}

	publish(s.logger, s.events, EventUserFollowed, map[string]any{
		"follower_id":  followerID,
		"following_id": targetID,
		"following":    following,
	})
	return following, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
