package models

// Optional holds a value that may or may not have been loaded.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a loaded value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Get returns the value and whether it was loaded.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present reports whether the value was loaded.
func (o Optional[T]) Present() bool {
	return o.present
}

// UserWith is a user plus the aggregates a query chose to load.
type UserWith struct {
	User
	PostsCount     Optional[int64]
	FollowersCount Optional[int64]
	FollowingCount Optional[int64]
}

// CommentWith is a comment plus the relations a query chose to load.
type CommentWith struct {
	Comment
	Author Optional[User]
	Likers Optional[[]Like]
}

// PostWith is a post plus the relations a query chose to load.
type PostWith struct {
	Post
	Author  Optional[User]
	Likers  Optional[[]Like]
	Replies Optional[[]CommentWith]
}
