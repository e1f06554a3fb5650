package repositories

import (
	"context"
	"errors"

	"tradefeed/internal/models"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// FindWithCounts loads the user with post, follower and following counts.
	FindWithCounts(ctx context.Context, id string) (*models.UserWith, error)
}

// FollowRepository defines the interface for follow relationships.
type FollowRepository interface {
	// Toggle follows or unfollows and reports whether the follow now exists.
	Toggle(ctx context.Context, followerID, followingID string) (bool, error)
}
