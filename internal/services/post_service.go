package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"tradefeed/internal/models"
	"tradefeed/internal/repositories"

	"go.uber.org/zap"
)

// PostService provides post operations.
type PostService struct {
	postRepo repositories.PostRepository
	likeRepo repositories.LikeRepository
	media    MediaStore
	events   EventPublisher
	logger   *zap.Logger
}

// NewPostService creates a new PostService. events may be nil.
func NewPostService(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	media MediaStore,
	events EventPublisher,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		likeRepo: likeRepo,
		media:    media,
		events:   events,
		logger:   logger,
	}
}

// Create stores a post for userID. At least one of content and media is set.
func (s *PostService) Create(ctx context.Context, userID string, content *string, media *multipart.FileHeader) (*models.PostWith, error) {
	post := &models.Post{UserID: userID, Content: content}
	if media != nil {
		stored, err := s.media.Save("posts", media)
		if err != nil {
			return nil, fmt.Errorf("failed to store post media: %w", err)
		}
		post.Media = &stored
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if post.Media != nil {
			discardMedia(s.logger, s.media, *post.Media)
		}
		return nil, err
	}

	publish(s.logger, s.events, EventPostCreated, map[string]any{
		"post_id": post.ID,
		"user_id": userID,
	})
	return s.postRepo.FindByID(ctx, post.ID, repositories.WithAuthor, repositories.WithLikers)
}

// Get returns a post with its author, likes and comments.
func (s *PostService) Get(ctx context.Context, id string) (*models.PostWith, error) {
	return s.postRepo.FindByID(ctx, id, repositories.WithAuthor, repositories.WithLikers, repositories.WithReplies)
}

// ToggleLike likes or unlikes the post and returns whether the like now
// exists along with the post and its likes.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (bool, *models.PostWith, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return false, nil, err
	}
	liked, err := s.likeRepo.Toggle(ctx, userID, postID, models.LikeablePost)
	if err != nil {
		return false, nil, err
	}

	publish(s.logger, s.events, EventLikeToggled, map[string]any{
		"user_id":       userID,
		"likeable_id":   postID,
		"likeable_type": models.LikeablePost,
		"liked":         liked,
	})

	post, err := s.postRepo.FindByID(ctx, postID, repositories.WithAuthor, repositories.WithLikers)
	if err != nil {
		return false, nil, err
	}
	return liked, post, nil
}
