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

// ProfileRepository handles database operations related to profiles.
type ProfileRepository struct {
	collection *mongo.Collection
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection("profiles"),
	}
}

// Get fetches a profile by id. Returns nil when no document matches.
func (r *ProfileRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// GetByEmail fetches a profile by its unique email. Emails are stored
// lowercase, so the lookup normalizes its argument.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}
	return &profile, nil
}

// GetByIdpID fetches the profile correlated to an identity-provider user.
func (r *ProfileRepository) GetByIdpID(ctx context.Context, idpID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"idp_id": idpID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by idp id: %w", err)
	}
	return &profile, nil
}

// GetAll returns every profile in the collection.
func (r *ProfileRepository) GetAll(ctx context.Context) ([]models.Profile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []models.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

// Create inserts a new profile and returns it with the assigned id.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert profile")
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	profile.ID = result.InsertedID.(primitive.ObjectID)

	logrus.WithField("profileID", profile.ID.Hex()).Info("Profile inserted")
	return profile, nil
}

// Patch applies the given fields and returns the updated document.
func (r *ProfileRepository) Patch(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Profile, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrEmptyPatch
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile models.Profile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Profile", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to patch profile: %w", err)
	}
	return &profile, nil
}

// Delete removes a profile and returns the deleted document.
func (r *ProfileRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Profile", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete profile: %w", err)
	}

	logrus.WithField("profileID", id.Hex()).Info("Profile deleted")
	return &profile, nil
}

// Put inserts a profile verbatim, keeping an existing id. Used by
// fixtures and the root-user bootstrap.
func (r *ProfileRepository) Put(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to put profile: %w", err)
	}
	return profile, nil
}
