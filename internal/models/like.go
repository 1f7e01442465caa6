package models

import "gorm.io/gorm"

// Like represents a like on a post. Post IDs are MongoDB ObjectIDs
// stored as hex strings.
type Like struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index;uniqueIndex:idx_post_user"`
	UserID uint   `json:"user_id" gorm:"index;uniqueIndex:idx_post_user"`
}

// LikeRequest defines the request body for liking or unliking a post
type LikeRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}
