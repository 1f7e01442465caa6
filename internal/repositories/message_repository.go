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

// MessageRepository defines the interface for direct-message data operations
type MessageRepository interface {
	FindOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	GetConversationByID(ctx context.Context, id string) (*models.Conversation, error)
	GetConversationsByUser(ctx context.Context, userID uint) ([]models.Conversation, error)
	TouchConversation(ctx context.Context, id primitive.ObjectID, at time.Time) error
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id string) (*models.Message, error)
	GetMessagesByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error)
	CountUnreadMessages(ctx context.Context, recipientID uint) (int64, error)
	MarkMessageRead(ctx context.Context, id string) error
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
	}
}

// FindOrCreateConversation returns the conversation between two users,
// creating it if none exists yet
func (r *MongoMessageRepository) FindOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"recipients": bson.M{"$all": []uint{userA, userB}}}).Decode(&conversation)
	if err == nil {
		return &conversation, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	conversation = models.Conversation{
		ID:            primitive.NewObjectID(),
		Recipients:    []uint{userA, userB},
		LastMessageAt: time.Now(),
		CreatedAt:     time.Now(),
	}
	if _, err := r.conversations.InsertOne(ctx, conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// GetConversationByID retrieves a conversation by ID
func (r *MongoMessageRepository) GetConversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid conversation ID format: %w", err)
	}

	var conversation models.Conversation
	err = r.conversations.FindOne(ctx, bson.M{"_id": objID}).Decode(&conversation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("conversation not found")
		}
		return nil, err
	}
	return &conversation, nil
}

// GetConversationsByUser retrieves a user's conversations, most recently
// active first
func (r *MongoMessageRepository) GetConversationsByUser(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	findOptions := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := r.conversations.Find(ctx, bson.M{"recipients": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// TouchConversation bumps the conversation's last-message timestamp
func (r *MongoMessageRepository) TouchConversation(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.conversations.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_message_at": at}})
	return err
}

// CreateMessage creates a new message in MongoDB
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.messages.InsertOne(ctx, message)
	return err
}

// GetMessageByID retrieves a single message by ID
func (r *MongoMessageRepository) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID format: %w", err)
	}

	var message models.Message
	err = r.messages.FindOne(ctx, bson.M{"_id": objID}).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("message not found")
		}
		return nil, err
	}
	return &message, nil
}

// GetMessagesByConversation retrieves a conversation's messages, newest first
func (r *MongoMessageRepository) GetMessagesByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error) {
	var messages []models.Message
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.messages.Find(ctx, bson.M{"conversation_id": conversationID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// CountUnreadMessages counts unread messages addressed to a user
func (r *MongoMessageRepository) CountUnreadMessages(ctx context.Context, recipientID uint) (int64, error) {
	return r.messages.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
}

// MarkMessageRead flags a single message as read. Absent IDs are a no-op.
func (r *MongoMessageRepository) MarkMessageRead(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid message ID format: %w", err)
	}
	_, err = r.messages.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"read": true}})
	return err
}
