package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a piece of content with optional media.
type Post struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)"`
	UserID    string  `gorm:"index;type:varchar(36)"`
	Content   *string `gorm:"type:varchar(255)"`
	Media     *string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	User     User      `gorm:"foreignKey:UserID"`
	Likes    []Like    `gorm:"polymorphic:Likeable"`
	Comments []Comment `gorm:"foreignKey:PostID"`
}

// Comment is a reply to a post.
type Comment struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)"`
	PostID    string  `gorm:"index;type:varchar(36)"`
	UserID    string  `gorm:"index;type:varchar(36)"`
	Content   *string `gorm:"type:varchar(255)"`
	Media     *string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	User  User   `gorm:"foreignKey:UserID"`
	Likes []Like `gorm:"polymorphic:Likeable"`
}

// Like types, stored in Like.LikeableType.
const (
	LikeablePost    = "posts"
	LikeableComment = "comments"
)

// Like is a user's like on a post or a comment.
type Like struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	UserID       string `gorm:"uniqueIndex:idx_likes_unique;type:varchar(36)"`
	LikeableID   string `gorm:"uniqueIndex:idx_likes_unique;index:idx_likes_target;type:varchar(36)"`
	LikeableType string `gorm:"uniqueIndex:idx_likes_unique;index:idx_likes_target;type:varchar(20)"`
	CreatedAt    time.Time

	User User `gorm:"foreignKey:UserID"`
}
