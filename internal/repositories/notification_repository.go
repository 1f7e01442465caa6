package repositories

import (
	"context"
	"time"

	"github.com/sraws-app/sraws/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationFilter narrows a recipient's notification listing.
// Type is "", "all", "unread" or one of the notification types; a zero
// Since means no time window.
type NotificationFilter struct {
	Type  string
	Since time.Time
}

// NotificationRepository defines the interface for notification storage
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	FindExisting(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	GetByRecipient(ctx context.Context, recipientID uint, filter NotificationFilter) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, recipientID uint) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// CreateNotification inserts a new notification with read=false
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.Read = false
	notification.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// FindExisting looks up a notification with the same type, sender, recipient
// and content references. Returns (nil, nil) when none exists. The lookup and
// the subsequent insert are two separate operations, so concurrent triggers
// can still both insert.
func (r *MongoNotificationRepository) FindExisting(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	query := bson.M{
		"type":         notification.Type,
		"sender_id":    notification.SenderID,
		"recipient_id": notification.RecipientID,
		"post_id":      notification.PostID,
		"comment_id":   notification.CommentID,
		"message_id":   notification.MessageID,
	}

	var existing models.Notification
	err := r.collection.FindOne(ctx, query).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// GetByRecipient retrieves a recipient's notifications newest first,
// narrowed by the filter
func (r *MongoNotificationRepository) GetByRecipient(ctx context.Context, recipientID uint, filter NotificationFilter) ([]models.Notification, error) {
	query := bson.M{"recipient_id": recipientID}
	switch filter.Type {
	case "", "all":
	case "unread":
		query["read"] = false
	default:
		query["type"] = filter.Type
	}
	if !filter.Since.IsZero() {
		query["created_at"] = bson.M{"$gte": filter.Since}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetUnreadCount counts a recipient's unread notifications
func (r *MongoNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
}

// MarkAsRead flags one notification as read. Absent or already-read
// records are a no-op.
func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	return err
}

// MarkAllAsRead flags every unread notification of a recipient as read
func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{"recipient_id": recipientID, "read": false}, bson.M{"$set": bson.M{"read": true}})
	return err
}
