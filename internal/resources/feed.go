package resources

import (
	"time"

	"tradefeed/internal/models"
)

// CommentView is the public projection of a comment.
type CommentView struct {
	ID         string           `json:"id"`
	PostID     string           `json:"post_id"`
	Content    *string          `json:"content"`
	Media      *string          `json:"media"`
	CreatedAt  time.Time        `json:"created_at"`
	User       *BasicUserView   `json:"user,omitempty"`
	Likes      *[]BasicUserView `json:"likes,omitempty"`
	LikesCount *int             `json:"likes_count,omitempty"`
}

// Comment projects c. user, likes and likes_count appear only when the
// corresponding relation was loaded.
func (t *Transformer) Comment(c models.CommentWith) CommentView {
	v := CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Media:     t.media(c.Media),
		CreatedAt: c.CreatedAt,
	}
	if author, ok := c.Author.Get(); ok {
		u := t.BasicUser(author)
		v.User = &u
	}
	if likes, ok := c.Likers.Get(); ok {
		v.Likes, v.LikesCount = t.likers(likes)
	}
	return v
}

// Comments projects a list of comments.
func (t *Transformer) Comments(cs []models.CommentWith) []CommentView {
	out := make([]CommentView, len(cs))
	for i, c := range cs {
		out[i] = t.Comment(c)
	}
	return out
}

// PostView is the public projection of a post.
type PostView struct {
	ID            string           `json:"id"`
	Content       *string          `json:"content"`
	Media         *string          `json:"media"`
	CreatedAt     time.Time        `json:"created_at"`
	User          *BasicUserView   `json:"user,omitempty"`
	Likes         *[]BasicUserView `json:"likes,omitempty"`
	LikesCount    *int             `json:"likes_count,omitempty"`
	Comments      *[]CommentView   `json:"comments,omitempty"`
	CommentsCount *int             `json:"comments_count,omitempty"`
}

// Post projects p with whichever relations were loaded.
func (t *Transformer) Post(p models.PostWith) PostView {
	v := PostView{
		ID:        p.ID,
		Content:   p.Content,
		Media:     t.media(p.Media),
		CreatedAt: p.CreatedAt,
	}
	if author, ok := p.Author.Get(); ok {
		u := t.BasicUser(author)
		v.User = &u
	}
	if likes, ok := p.Likers.Get(); ok {
		v.Likes, v.LikesCount = t.likers(likes)
	}
	if replies, ok := p.Replies.Get(); ok {
		comments := t.Comments(replies)
		n := len(comments)
		v.Comments, v.CommentsCount = &comments, &n
	}
	return v
}
