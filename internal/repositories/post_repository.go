package repositories

import (
	"context"

	"tradefeed/internal/models"
)

// Relation names an association a query may materialize.
type Relation string

const (
	// WithAuthor loads the post or comment author.
	WithAuthor Relation = "author"
	// WithLikers loads likes together with each liking user.
	WithLikers Relation = "likers"
	// WithReplies loads a post's comments with their authors.
	WithReplies Relation = "replies"
)

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id string, with ...Relation) (*models.PostWith, error)
}

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id string, with ...Relation) (*models.CommentWith, error)
	ListByPost(ctx context.Context, postID string, with ...Relation) ([]models.CommentWith, error)
}

// LikeRepository defines the interface for likes on posts and comments.
type LikeRepository interface {
	// Toggle likes or unlikes and reports whether the like now exists.
	Toggle(ctx context.Context, userID, likeableID, likeableType string) (bool, error)
}

func has(with []Relation, r Relation) bool {
	for _, w := range with {
		if w == r {
			return true
		}
	}
	return false
}
