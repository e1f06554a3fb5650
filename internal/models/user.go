package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account that posts, comments, likes and follows.
type User struct {
	ID           string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string         `json:"username" gorm:"uniqueIndex;type:varchar(255)"`
	Email        string         `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password     string         `json:"-" gorm:"type:varchar(255)"`
	Firstname    string         `json:"firstname" gorm:"type:varchar(255)"`
	Lastname     string         `json:"lastname" gorm:"type:varchar(255)"`
	Bio          *string        `json:"bio" gorm:"type:varchar(255)"`
	ProfileImage *string        `json:"profile_image" gorm:"type:varchar(255)"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// Follow records that Follower follows Following.
type Follow struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID  string `gorm:"uniqueIndex:idx_follows_pair;type:varchar(36)"`
	FollowingID string `gorm:"uniqueIndex:idx_follows_pair;index;type:varchar(36)"`
	CreatedAt   time.Time
}
