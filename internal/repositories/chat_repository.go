package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/sraws-app/sraws/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatRepository defines the interface for community channel storage
type ChatRepository interface {
	GetMessages(ctx context.Context) ([]models.ChatMessage, error)
	CreateMessage(ctx context.Context, message *models.ChatMessage) error
	AddReply(ctx context.Context, messageID string, reply models.ChatReply) error
}

// MongoChatRepository implements ChatRepository for MongoDB
type MongoChatRepository struct {
	collection *mongo.Collection
}

// NewMongoChatRepository creates a new MongoChatRepository
func NewMongoChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{collection: db.Collection("chat_messages")}
}

// GetMessages retrieves the community channel history, oldest first
func (r *MongoChatRepository) GetMessages(ctx context.Context) ([]models.ChatMessage, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage posts a new message to the community channel
func (r *MongoChatRepository) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	if message.Replies == nil {
		message.Replies = []models.ChatReply{}
	}
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// AddReply appends a reply to an existing chat message
func (r *MongoChatRepository) AddReply(ctx context.Context, messageID string, reply models.ChatReply) error {
	objID, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return fmt.Errorf("invalid chat message ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"replies": reply}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("chat message not found")
	}
	return nil
}
