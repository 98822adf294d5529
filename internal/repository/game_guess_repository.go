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

// GameGuessRepository handles database operations related to guesses
// made against daily guess games.
type GameGuessRepository struct {
	collection *mongo.Collection
}

// NewGameGuessRepository creates a new instance of GameGuessRepository.
func NewGameGuessRepository(db *mongo.Database) *GameGuessRepository {
	return &GameGuessRepository{
		collection: db.Collection("game_guesses"),
	}
}

// Get fetches a game guess by id. Returns nil when no document matches.
func (r *GameGuessRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.GameGuess, error) {
	var guess models.GameGuess
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&guess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find game guess: %w", err)
	}
	return &guess, nil
}

// GetByGameAndIP fetches the guess document a caller accumulated for one
// daily game. Returns nil when the caller has not guessed yet.
func (r *GameGuessRepository) GetByGameAndIP(ctx context.Context, gameID primitive.ObjectID, ip string) (*models.GameGuess, error) {
	var guess models.GameGuess
	err := r.collection.FindOne(ctx, bson.M{"daily_guess_game_id": gameID, "ip": ip}).Decode(&guess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find game guess by game and ip: %w", err)
	}
	return &guess, nil
}

// GetAll returns every game guess in the collection.
func (r *GameGuessRepository) GetAll(ctx context.Context) ([]models.GameGuess, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game guesses: %w", err)
	}
	defer cursor.Close(ctx)

	guesses := []models.GameGuess{}
	if err := cursor.All(ctx, &guesses); err != nil {
		return nil, fmt.Errorf("failed to decode game guesses: %w", err)
	}
	return guesses, nil
}

// Create inserts a new game guess.
func (r *GameGuessRepository) Create(ctx context.Context, guess *models.GameGuess) (*models.GameGuess, error) {
	now := time.Now().UTC()
	guess.CreatedAt = now
	guess.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, guess)
	if err != nil {
		return nil, fmt.Errorf("failed to insert game guess: %w", err)
	}
	guess.ID = result.InsertedID.(primitive.ObjectID)
	return guess, nil
}

// AppendAttempt pushes an attempt onto an existing guess document,
// stamping guessed_at when the attempt solved the game.
func (r *GameGuessRepository) AppendAttempt(ctx context.Context, id primitive.ObjectID, attempt models.GuessAttempt, solvedAt *time.Time) (*models.GameGuess, error) {
	update := bson.M{
		"$push": bson.M{"attempts": attempt},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	if solvedAt != nil {
		update["$set"].(bson.M)["guessed_at"] = *solvedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var guess models.GameGuess
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&guess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Game guess", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to append attempt: %w", err)
	}
	return &guess, nil
}

// Patch applies the given fields and returns the updated document.
func (r *GameGuessRepository) Patch(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.GameGuess, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrEmptyPatch
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var guess models.GameGuess
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&guess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Game guess", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to patch game guess: %w", err)
	}
	return &guess, nil
}

// Delete removes a game guess and returns the deleted document.
func (r *GameGuessRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.GameGuess, error) {
	var guess models.GameGuess
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&guess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Game guess", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete game guess: %w", err)
	}
	return &guess, nil
}

// Put inserts a game guess verbatim, keeping an existing id.
func (r *GameGuessRepository) Put(ctx context.Context, guess *models.GameGuess) (*models.GameGuess, error) {
	if _, err := r.collection.InsertOne(ctx, guess); err != nil {
		return nil, fmt.Errorf("failed to put game guess: %w", err)
	}
	return guess, nil
}
