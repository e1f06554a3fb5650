package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"tradefeed/internal/models"
	"tradefeed/internal/repositories"

	"go.uber.org/zap"
)

// CommentService provides comment operations.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	likeRepo    repositories.LikeRepository
	media       MediaStore
	events      EventPublisher
	logger      *zap.Logger
}

// NewCommentService creates a new CommentService. events may be nil.
func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	media MediaStore,
	events EventPublisher,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		media:       media,
		events:      events,
		logger:      logger,
	}
}

// CreateCommentInput carries a validated comment.
type CreateCommentInput struct {
	PostID  string
	Content *string
	Media   *multipart.FileHeader
}

// Create stores a comment by userID and returns it with author and likes.
func (s *CommentService) Create(ctx context.Context, userID string, in CreateCommentInput) (*models.CommentWith, error) {
	comment := &models.Comment{PostID: in.PostID, UserID: userID, Content: in.Content}
	if in.Media != nil {
		stored, err := s.media.Save("comments", in.Media)
		if err != nil {
			return nil, fmt.Errorf("failed to store comment media: %w", err)
		}
		comment.Media = &stored
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if comment.Media != nil {
			discardMedia(s.logger, s.media, *comment.Media)
		}
		return nil, err
	}

	publish(s.logger, s.events, EventCommentCreated, map[string]any{
		"comment_id": comment.ID,
		"post_id":    in.PostID,
		"user_id":    userID,
	})
	return s.commentRepo.FindByID(ctx, comment.ID, repositories.WithAuthor, repositories.WithLikers)
}

// ListByPost returns the comments of a post, oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]models.CommentWith, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, repositories.WithAuthor, repositories.WithLikers)
}

// ToggleLike likes or unlikes the comment and returns whether the like now
// exists along with the comment and its likes.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID string) (bool, *models.CommentWith, error) {
	if _, err := s.commentRepo.FindByID(ctx, commentID); err != nil {
		return false, nil, err
	}
	liked, err := s.likeRepo.Toggle(ctx, userID, commentID, models.LikeableComment)
	if err != nil {
		return false, nil, err
	}

	publish(s.logger, s.events, EventLikeToggled, map[string]any{
		"user_id":       userID,
		"likeable_id":   commentID,
		"likeable_type": models.LikeableComment,
		"liked":         liked,
	})

	comment, err := s.commentRepo.FindByID(ctx, commentID, repositories.WithAuthor, repositories.WithLikers)
	if err != nil {
		return false, nil, err
	}
	return liked, comment, nil
}
