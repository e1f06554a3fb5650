package repositories

import (
	"context"
	"errors"
	"fmt"

	"tradefeed/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update saves every column of an existing user.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(user).Select("*").Omit(clause.Associations).Updates(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s %w", user.ID, ErrNotFound)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// FindWithCounts retrieves a user together with its aggregate counts.
func (r *GORMUserRepository) FindWithCounts(ctx context.Context, id string) (*models.UserWith, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var posts, followers, following int64
	if err := db.Model(&models.Post{}).Where("user_id = ?", id).Count(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts of user %s: %w", id, err)
	}
	if err := db.Model(&models.Follow{}).Where("following_id = ?", id).Count(&followers).Error; err != nil {
		return nil, fmt.Errorf("failed to count followers of user %s: %w", id, err)
	}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", id).Count(&following).Error; err != nil {
		return nil, fmt.Errorf("failed to count followings of user %s: %w", id, err)
	}

	return &models.UserWith{
		User:           *user,
		PostsCount:     models.Some(posts),
		FollowersCount: models.Some(followers),
		FollowingCount: models.Some(following),
	}, nil
}

// GORMFollowRepository is a GORM implementation of FollowRepository.
type GORMFollowRepository struct {
	db *gorm.DB
}

// NewGORMFollowRepository creates a new instance of GORMFollowRepository.
func NewGORMFollowRepository(db *gorm.DB) *GORMFollowRepository {
	return &GORMFollowRepository{db: db}
}

// Toggle removes the follow when it exists and creates it otherwise.
func (r *GORMFollowRepository) Toggle(ctx context.Context, followerID, followingID string) (bool, error) {
	var following bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		following = true
		// A concurrent toggle may have inserted the pair already.
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Follow{
			ID:          uuid.New().String(),
			FollowerID:  followerID,
			FollowingID: followingID,
		}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle follow %s -> %s: %w", followerID, followingID, err)
	}
	return following, nil
}
