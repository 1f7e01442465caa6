package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatReply is a threaded reply under a community chat message.
type ChatReply struct {
	Sender    string    `json:"sender" bson:"sender"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ChatMessage is a message in the shared community channel (MongoDB).
// Senders are display names, not user IDs; the channel allows anonymous
// participation.
type ChatMessage struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Sender    string             `json:"sender" bson:"sender"`
	Message   string             `json:"message" bson:"message"`
	Replies   []ChatReply        `json:"replies" bson:"replies"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// SendChatRequest defines the request body for posting to the community channel
type SendChatRequest struct {
	Sender  string `json:"sender" validate:"required,min=1,max=50"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// ReplyChatRequest defines the request body for replying to a chat message
type ReplyChatRequest struct {
	MessageID string `json:"message_id" validate:"required"`
	Sender    string `json:"sender" validate:"required,min=1,max=50"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}
