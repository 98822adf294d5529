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

// GuessGameRepository handles database operations related to daily
// guess games.
type GuessGameRepository struct {
	collection *mongo.Collection
}

// NewGuessGameRepository creates a new instance of GuessGameRepository.
func NewGuessGameRepository(db *mongo.Database) *GuessGameRepository {
	return &GuessGameRepository{
		collection: db.Collection("guess_games"),
	}
}

// Get fetches a guess game by id. Returns nil when no document matches.
func (r *GuessGameRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.GuessGame, error) {
	var game models.GuessGame
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find guess game: %w", err)
	}
	return &game, nil
}

// GetAll returns every guess game in the collection.
func (r *GuessGameRepository) GetAll(ctx context.Context) ([]models.GuessGame, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guess games: %w", err)
	}
	defer cursor.Close(ctx)

	games := []models.GuessGame{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode guess games: %w", err)
	}
	return games, nil
}

// GetToday returns the guess game created for the current UTC day, or
// nil when none exists yet.
func (r *GuessGameRepository) GetToday(ctx context.Context) (*models.GuessGame, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var game models.GuessGame
	err := r.collection.FindOne(ctx, bson.M{"created_at": bson.M{"$gte": dayStart}}, opts).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find today's guess game: %w", err)
	}
	return &game, nil
}

// Create inserts a new guess game.
func (r *GuessGameRepository) Create(ctx context.Context, game *models.GuessGame) (*models.GuessGame, error) {
	now := time.Now().UTC()
	game.CreatedAt = now
	game.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to insert guess game: %w", err)
	}
	game.ID = result.InsertedID.(primitive.ObjectID)
	return game, nil
}

// Patch applies the given fields and returns the updated document.
func (r *GuessGameRepository) Patch(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.GuessGame, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrEmptyPatch
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var game models.GuessGame
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Guess game", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to patch guess game: %w", err)
	}
	return &game, nil
}

// Delete removes a guess game and returns the deleted document.
func (r *GuessGameRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.GuessGame, error) {
	var game models.GuessGame
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Guess game", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete guess game: %w", err)
	}
	return &game, nil
}

// Put inserts a guess game verbatim, keeping an existing id.
func (r *GuessGameRepository) Put(ctx context.Context, game *models.GuessGame) (*models.GuessGame, error) {
	if _, err := r.collection.InsertOne(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to put guess game: %w", err)
	}
	return game, nil
}
