package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/models"
)

// PlatformRepository handles database operations related to platforms
// and their supported operating systems.
type PlatformRepository struct {
	collection   *mongo.Collection
	osCollection *mongo.Collection
}

// NewPlatformRepository creates a new instance of PlatformRepository.
func NewPlatformRepository(db *mongo.Database) *PlatformRepository {
	return &PlatformRepository{
		collection:   db.Collection("platforms"),
		osCollection: db.Collection("platforms_os"),
	}
}

// Get fetches a platform by id. Returns nil when no document matches.
func (r *PlatformRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Platform, error) {
	var platform models.Platform
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&platform)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find platform: %w", err)
	}
	return &platform, nil
}

// GetAll returns platforms, optionally filtered by the enabled flag.
func (r *PlatformRepository) GetAll(ctx context.Context, enabled *bool) ([]models.Platform, error) {
	filter := bson.M{}
	if enabled != nil {
		filter["enabled"] = *enabled
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch platforms: %w", err)
	}
	defer cursor.Close(ctx)

	platforms := []models.Platform{}
	if err := cursor.All(ctx, &platforms); err != nil {
		return nil, fmt.Errorf("failed to decode platforms: %w", err)
	}
	return platforms, nil
}

// Create inserts a new platform with its derived slug.
func (r *PlatformRepository) Create(ctx context.Context, platform *models.Platform) (*models.Platform, error) {
	now := time.Now().UTC()
	platform.Slug = models.Slugify(platform.Name)
	platform.CreatedAt = now
	platform.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, platform)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert platform")
		return nil, fmt.Errorf("failed to insert platform: %w", err)
	}
	platform.ID = result.InsertedID.(primitive.ObjectID)
	return platform, nil
}

// Patch applies the given fields and returns the updated document.
func (r *PlatformRepository) Patch(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Platform, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrEmptyPatch
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var platform models.Platform
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&platform)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Platform", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to patch platform: %w", err)
	}
	return &platform, nil
}

// Delete removes a platform and returns the deleted document.
func (r *PlatformRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Platform, error) {
	var platform models.Platform
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&platform)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Platform", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete platform: %w", err)
	}
	return &platform, nil
}

// Put inserts a platform verbatim, keeping an existing id.
func (r *PlatformRepository) Put(ctx context.Context, platform *models.Platform) (*models.Platform, error) {
	if _, err := r.collection.InsertOne(ctx, platform); err != nil {
		return nil, fmt.Errorf("failed to put platform: %w", err)
	}
	return platform, nil
}

// GetOS returns the operating systems registered for a platform.
func (r *PlatformRepository) GetOS(ctx context.Context, platformID primitive.ObjectID) ([]models.PlatformOS, error) {
	cursor, err := r.osCollection.Find(ctx, bson.M{"platform_id": platformID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch platform os list: %w", err)
	}
	defer cursor.Close(ctx)

	oses := []models.PlatformOS{}
	if err := cursor.All(ctx, &oses); err != nil {
		return nil, fmt.Errorf("failed to decode platform os list: %w", err)
	}
	return oses, nil
}

// PutOS inserts a platform OS verbatim. Used by fixtures.
func (r *PlatformRepository) PutOS(ctx context.Context, os *models.PlatformOS) (*models.PlatformOS, error) {
	if _, err := r.osCollection.InsertOne(ctx, os); err != nil {
		return nil, fmt.Errorf("failed to put platform os: %w", err)
	}
	return os, nil
}
