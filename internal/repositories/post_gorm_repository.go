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

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create creates a new post in the database.
func (r *GORMPostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// FindByID retrieves a post and the requested relations.
func (r *GORMPostRepository) FindByID(ctx context.Context, id string, with ...Relation) (*models.PostWith, error) {
	q := r.db.WithContext(ctx)
	if has(with, WithAuthor) {
		q = q.Preload("User")
	}
	if has(with, WithLikers) {
		q = q.Preload("Likes", orderedByCreation).Preload("Likes.User")
	}
	if has(with, WithReplies) {
		q = q.Preload("Comments", orderedByCreation).Preload("Comments.User")
	}

	var post models.Post
	if err := q.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}

	out := &models.PostWith{Post: post}
	if has(with, WithAuthor) {
		out.Author = models.Some(post.User)
	}
	if has(with, WithLikers) {
		out.Likers = models.Some(post.Likes)
	}
	if has(with, WithReplies) {
		replies := make([]models.CommentWith, len(post.Comments))
		for i, c := range post.Comments {
			replies[i] = models.CommentWith{Comment: c, Author: models.Some(c.User)}
		}
		out.Replies = models.Some(replies)
	}
	return out, nil
}

func orderedByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create creates a new comment in the database.
func (r *GORMCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *GORMCommentRepository) preload(ctx context.Context, with []Relation) *gorm.DB {
	q := r.db.WithContext(ctx)
	if has(with, WithAuthor) {
		q = q.Preload("User")
	}
	if has(with, WithLikers) {
		q = q.Preload("Likes", orderedByCreation).Preload("Likes.User")
	}
	return q
}

func commentWith(c models.Comment, with []Relation) models.CommentWith {
	out := models.CommentWith{Comment: c}
	if has(with, WithAuthor) {
		out.Author = models.Some(c.User)
	}
	if has(with, WithLikers) {
		out.Likers = models.Some(c.Likes)
	}
	return out
}

// FindByID retrieves a comment and the requested relations.
func (r *GORMCommentRepository) FindByID(ctx context.Context, id string, with ...Relation) (*models.CommentWith, error) {
	var comment models.Comment
	if err := r.preload(ctx, with).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment by ID %s: %w", id, err)
	}
	out := commentWith(comment, with)
	return &out, nil
}

// ListByPost retrieves the comments of a post, oldest first.
func (r *GORMCommentRepository) ListByPost(ctx context.Context, postID string, with ...Relation) ([]models.CommentWith, error) {
	var comments []models.Comment
	if err := r.preload(ctx, with).Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments of post %s: %w", postID, err)
	}
	out := make([]models.CommentWith, len(comments))
	for i, c := range comments {
		out[i] = commentWith(c, with)
	}
	return out, nil
}

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{db: db}
}

// Toggle removes the like when it exists and creates it otherwise.
func (r *GORMLikeRepository) Toggle(ctx context.Context, userID, likeableID, likeableType string) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND likeable_id = ? AND likeable_type = ?", userID, likeableID, likeableType).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		liked = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&models.Like{
			ID:           uuid.New().String(),
			UserID:       userID,
			LikeableID:   likeableID,
			LikeableType: likeableType,
		}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle like on %s %s: %w", likeableType, likeableID, err)
	}
	return liked, nil
}
