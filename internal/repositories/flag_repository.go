package repositories

import (
	"context"
	"time"

	"github.com/sraws-app/sraws/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FlagRepository defines the interface for post flag storage
type FlagRepository interface {
	CreateFlag(ctx context.Context, flag *models.PostFlag) error
	HasUserFlaggedPost(ctx context.Context, postID primitive.ObjectID, userID uint) (bool, error)
	CountByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
}

// MongoFlagRepository implements FlagRepository for MongoDB
type MongoFlagRepository struct {
	collection *mongo.Collection
}

// NewMongoFlagRepository creates a new MongoFlagRepository
func NewMongoFlagRepository(db *mongo.Database) *MongoFlagRepository {
	return &MongoFlagRepository{collection: db.Collection("post_flags")}
}

// CreateFlag records a post report
func (r *MongoFlagRepository) CreateFlag(ctx context.Context, flag *models.PostFlag) error {
	flag.ID = primitive.NewObjectID()
	flag.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, flag)
	return err
}

// HasUserFlaggedPost checks whether a user already reported a post
func (r *MongoFlagRepository) HasUserFlaggedPost(ctx context.Context, postID primitive.ObjectID, userID uint) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"post_id": postID, "reporter_id": userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByPost counts how many times a post has been reported
func (r *MongoFlagRepository) CountByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"post_id": postID})
}
