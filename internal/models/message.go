package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation pairs two users for direct messaging (MongoDB)
type Conversation struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Recipients    []uint             `json:"recipients" bson:"recipients"`
	LastMessageAt time.Time          `json:"last_message_at" bson:"last_message_at"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// OtherRecipient returns the participant that is not the given user.
func (c *Conversation) OtherRecipient(userID uint) uint {
	for _, r := range c.Recipients {
		if r != userID {
			return r
		}
	}
	return 0
}

// Message is a single direct message within a conversation (MongoDB)
type Message struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ConversationID primitive.ObjectID `json:"conversation_id" bson:"conversation_id"`
	SenderID       uint               `json:"sender_id" bson:"sender_id"`
	RecipientID    uint               `json:"recipient_id" bson:"recipient_id"`
	Content        string             `json:"content" bson:"content"`
	Read           bool               `json:"read" bson:"read"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	SenderID uint   `json:"sender_id" validate:"required"`
	Content  string `json:"content" validate:"required,min=1,max=2000"`
}
