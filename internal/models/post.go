package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address locates the incident a report post describes
type Address struct {
	Country string `json:"country" bson:"country" validate:"required"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	Area    string `json:"area,omitempty" bson:"area,omitempty"`
}

// Post represents a report post stored in MongoDB
type Post struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PosterID     uint               `json:"poster_id" bson:"poster_id"`
	Title        string             `json:"title" bson:"title"`
	Content      string             `json:"content" bson:"content"`
	Address      Address            `json:"address" bson:"address"`
	MediaURLs    []string           `json:"media_urls,omitempty" bson:"media_urls,omitempty"`
	LikeCount    int                `json:"like_count" bson:"like_count"`
	CommentCount int                `json:"comment_count" bson:"comment_count"`
	ViewCount    int                `json:"view_count" bson:"view_count"`
	Edited       bool               `json:"edited" bson:"edited"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	PosterID  uint     `json:"poster_id" validate:"required"`
	Title     string   `json:"title" validate:"required,min=1,max=80"`
	Content   string   `json:"content" validate:"required,min=1,max=8000"`
	Address   Address  `json:"address" validate:"required"`
	MediaURLs []string `json:"media_urls,omitempty" validate:"omitempty,dive,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title     string   `json:"title,omitempty" validate:"omitempty,min=1,max=80"`
	Content   string   `json:"content,omitempty" validate:"omitempty,min=1,max=8000"`
	MediaURLs []string `json:"media_urls,omitempty" validate:"omitempty,dive,url"`
}
