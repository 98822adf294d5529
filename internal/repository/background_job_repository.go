package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/indieneer/backend/internal/models"
)

// BackgroundJobRepository exposes the background_jobs collection. Jobs
// are written by offline tooling; the API only reads them.
type BackgroundJobRepository struct {
	collection *mongo.Collection
}

// NewBackgroundJobRepository creates a new instance of BackgroundJobRepository.
func NewBackgroundJobRepository(db *mongo.Database) *BackgroundJobRepository {
	return &BackgroundJobRepository{
		collection: db.Collection("background_jobs"),
	}
}

// GetAll returns every background job in the collection.
func (r *BackgroundJobRepository) GetAll(ctx context.Context) ([]models.BackgroundJob, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch background jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []models.BackgroundJob{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode background jobs: %w", err)
	}
	return jobs, nil
}
