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

// AffiliateRepository handles database operations related to affiliates.
type AffiliateRepository struct {
	collection *mongo.Collection
}

// NewAffiliateRepository creates a new instance of AffiliateRepository.
func NewAffiliateRepository(db *mongo.Database) *AffiliateRepository {
	return &AffiliateRepository{
		collection: db.Collection("affiliates"),
	}
}

// Get fetches an affiliate by id. Returns nil when no document matches.
func (r *AffiliateRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&affiliate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find affiliate: %w", err)
	}
	return &affiliate, nil
}

// GetAll returns every affiliate in the collection.
func (r *AffiliateRepository) GetAll(ctx context.Context) ([]models.Affiliate, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch affiliates: %w", err)
	}
	defer cursor.Close(ctx)

	affiliates := []models.Affiliate{}
	if err := cursor.All(ctx, &affiliates); err != nil {
		return nil, fmt.Errorf("failed to decode affiliates: %w", err)
	}
	return affiliates, nil
}

// Create inserts a new affiliate with its derived slug.
func (r *AffiliateRepository) Create(ctx context.Context, affiliate *models.Affiliate) (*models.Affiliate, error) {
	now := time.Now().UTC()
	affiliate.Slug = models.Slugify(affiliate.Name)
	affiliate.CreatedAt = now
	affiliate.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, affiliate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert affiliate: %w", err)
	}
	affiliate.ID = result.InsertedID.(primitive.ObjectID)
	return affiliate, nil
}

// Patch applies the given fields and returns the updated document.
func (r *AffiliateRepository) Patch(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Affiliate, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrEmptyPatch
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var affiliate models.Affiliate
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&affiliate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Affiliate", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to patch affiliate: %w", err)
	}
	return &affiliate, nil
}

// Delete removes an affiliate and returns the deleted document.
func (r *AffiliateRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&affiliate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Affiliate", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete affiliate: %w", err)
	}
	return &affiliate, nil
}

// Put inserts an affiliate verbatim, keeping an existing id.
func (r *AffiliateRepository) Put(ctx context.Context, affiliate *models.Affiliate) (*models.Affiliate, error) {
	if _, err := r.collection.InsertOne(ctx, affiliate); err != nil {
		return nil, fmt.Errorf("failed to put affiliate: %w", err)
	}
	return affiliate, nil
}
