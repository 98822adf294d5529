package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
)

// GuessGameService encapsulates the daily guess-the-game mini-game.
type GuessGameService struct {
	games   *repository.GuessGameRepository
	guesses *repository.GameGuessRepository
}

// NewGuessGameService creates a new instance of GuessGameService.
func NewGuessGameService(games *repository.GuessGameRepository, guesses *repository.GameGuessRepository) *GuessGameService {
	return &GuessGameService{
		games:   games,
		guesses: guesses,
	}
}

func (s *GuessGameService) Get(ctx context.Context, id string) (*models.GuessGame, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	game, err := s.games.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, apperrors.NewNotFound("Guess game", id)
	}
	return game, nil
}

func (s *GuessGameService) GetAll(ctx context.Context) ([]models.GuessGame, error) {
	return s.games.GetAll(ctx)
}

// GetToday returns the puzzle published for the current UTC day.
func (s *GuessGameService) GetToday(ctx context.Context) (*models.GuessGame, error) {
	game, err := s.games.GetToday(ctx)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, apperrors.NewNotFound("Guess game", "")
	}
	return game, nil
}

func (s *GuessGameService) Create(ctx context.Context, input models.CreateGuessGame) (*models.GuessGame, error) {
	productID, err := models.ObjectIDFromHex(input.ProductID)
	if err != nil {
		return nil, err
	}
	return s.games.Create(ctx, &models.GuessGame{
		ProductID: productID,
		Type:      input.Type,
		Data:      bson.M(input.Data),
	})
}

func (s *GuessGameService) Patch(ctx context.Context, id string, input models.PatchGuessGame) (*models.GuessGame, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	fields, err := input.Fields()
	if err != nil {
		return nil, err
	}
	return s.games.Patch(ctx, oid, fields)
}

func (s *GuessGameService) Delete(ctx context.Context, id string) (*models.GuessGame, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.games.Delete(ctx, oid)
}

// SubmitGuess records one attempt against a daily game, accumulating
// attempts per caller ip. GuessedAt is stamped once the guessed product
// matches the game's product.
func (s *GuessGameService) SubmitGuess(ctx context.Context, gameID, ip, profileID, productID string, data map[string]interface{}) (*models.GameGuess, error) {
	gameOID, err := models.ObjectIDFromHex(gameID)
	if err != nil {
		return nil, err
	}
	game, err := s.games.Get(ctx, gameOID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, apperrors.NewNotFound("Guess game", gameID)
	}

	productOID, err := models.ObjectIDFromHex(productID)
	if err != nil {
		return nil, err
	}

	guess, err := s.guesses.GetByGameAndIP(ctx, gameOID, ip)
	if err != nil {
		return nil, err
	}
	if guess == nil {
		fresh := &models.GameGuess{
			DailyGuessGameID: gameOID,
			IP:               ip,
			Attempts:         []models.GuessAttempt{},
		}
		if profileID != "" {
			oid, err := models.ObjectIDFromHex(profileID)
			if err != nil {
				return nil, err
			}
			fresh.ProfileID = &oid
		}
		guess, err = s.guesses.Create(ctx, fresh)
		if err != nil {
			return nil, err
		}
	}

	if guess.GuessedAt != nil {
		return guess, nil
	}

	attempt := models.GuessAttempt{ProductID: productOID, Data: bson.M(data)}
	var solvedAt *time.Time
	if productOID == game.ProductID {
		now := time.Now().UTC()
		solvedAt = &now
	}

	return s.guesses.AppendAttempt(ctx, guess.ID, attempt, solvedAt)
}
