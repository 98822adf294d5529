package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/models"
)

// TagRepository handles database operations related to tags.
type TagRepository struct {
	collection *mongo.Collection
}

// NewTagRepository creates a new instance of TagRepository.
func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{
		collection: db.Collection("tags"),
	}
}

// Get fetches a tag by id. Returns nil when no document matches.
func (r *TagRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Tag, error) {
	var tag models.Tag
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return &tag, nil
}

// GetAll returns every tag in the collection.
func (r *TagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	defer cursor.Close(ctx)

	tags := []models.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

// Create inserts a new tag.
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	now := time.Now().UTC()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}
	tag.ID = result.InsertedID.(primitive.ObjectID)
	return tag, nil
}

// Patch applies the given fields and returns the updated document.
func (r *TagRepository) Patch(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Tag, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrEmptyPatch
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tag models.Tag
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Tag", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to patch tag: %w", err)
	}
	return &tag, nil
}

// Delete removes a tag and returns the deleted document.
func (r *TagRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Tag, error) {
	var tag models.Tag
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Tag", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete tag: %w", err)
	}
	return &tag, nil
}

// Put inserts a tag verbatim, keeping an existing id.
func (r *TagRepository) Put(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	if _, err := r.collection.InsertOne(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to put tag: %w", err)
	}
	return tag, nil
}
