package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostFlag records that a user reported a post for review (MongoDB)
type PostFlag struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID     primitive.ObjectID `json:"post_id" bson:"post_id"`
	ReporterID uint               `json:"reporter_id" bson:"reporter_id"`
	Reason     string             `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// FlagPostRequest defines the request body for reporting a post
type FlagPostRequest struct {
	UserID uint   `json:"user_id" validate:"required"`
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
