// Package resources maps domain records to their public JSON projections.
//
// Transformers only read what the caller already loaded: a relation that is
// absent from the input is left out of the output entirely.
package resources

import (
	"errors"
	"time"

	"tradefeed/internal/models"
)

// ErrMalformedInput is returned when a transformer is handed an input it
// cannot project.
var ErrMalformedInput = errors.New("malformed transformer input")

// Transformer builds views. MediaURL turns a stored media path into a
// public URL.
type Transformer struct {
	MediaURL func(path string) string
}

// New returns a Transformer using mediaURL for stored files.
func New(mediaURL func(path string) string) *Transformer {
	return &Transformer{MediaURL: mediaURL}
}

func (t *Transformer) media(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	u := *p
	if t.MediaURL != nil {
		u = t.MediaURL(u)
	}
	return &u
}

// BasicUserView is the compact user projection used inside other views.
type BasicUserView struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Firstname    string  `json:"firstname"`
	Lastname     string  `json:"lastname"`
	ProfileImage *string `json:"profile_image"`
}

// BasicUser projects u.
func (t *Transformer) BasicUser(u models.User) BasicUserView {
	return BasicUserView{
		ID:           u.ID,
		Username:     u.Username,
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		ProfileImage: t.media(u.ProfileImage),
	}
}

// UserView is the public profile of a user.
type UserView struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Bio            *string   `json:"bio"`
	ProfileImage   *string   `json:"profile_image"`
	CreatedAt      time.Time `json:"created_at"`
	PostsCount     *int64    `json:"posts_count,omitempty"`
	FollowersCount *int64    `json:"followers_count,omitempty"`
	FollowingCount *int64    `json:"following_count,omitempty"`
}

// User projects u, including whichever counts were loaded.
func (t *Transformer) User(u models.UserWith) UserView {
	v := UserView{
		ID:           u.ID,
		Username:     u.Username,
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		Bio:          u.Bio,
		ProfileImage: t.media(u.ProfileImage),
		CreatedAt:    u.CreatedAt,
	}
	if n, ok := u.PostsCount.Get(); ok {
		v.PostsCount = &n
	}
	if n, ok := u.FollowersCount.Get(); ok {
		v.FollowersCount = &n
	}
	if n, ok := u.FollowingCount.Get(); ok {
		v.FollowingCount = &n
	}
	return v
}

// likers derefs each like to its user.
func (t *Transformer) likers(likes []models.Like) (*[]BasicUserView, *int) {
	views := make([]BasicUserView, len(likes))
	for i, l := range likes {
		views[i] = t.BasicUser(l.User)
	}
	n := len(views)
	return &views, &n
}
