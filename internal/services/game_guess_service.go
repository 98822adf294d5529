package services

import (
	"context"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
)

// GameGuessService encapsulates admin access to recorded guesses.
type GameGuessService struct {
	repo *repository.GameGuessRepository
}

// NewGameGuessService creates a new instance of GameGuessService.
func NewGameGuessService(repo *repository.GameGuessRepository) *GameGuessService {
	return &GameGuessService{repo: repo}
}

func (s *GameGuessService) Get(ctx context.Context, id string) (*models.GameGuess, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	guess, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if guess == nil {
		return nil, apperrors.NewNotFound("Game guess", id)
	}
	return guess, nil
}

func (s *GameGuessService) GetAll(ctx context.Context) ([]models.GameGuess, error) {
	return s.repo.GetAll(ctx)
}

func (s *GameGuessService) Patch(ctx context.Context, id string, input models.PatchGameGuess) (*models.GameGuess, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Patch(ctx, oid, input.Fields())
}

func (s *GameGuessService) Delete(ctx context.Context, id string) (*models.GameGuess, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, oid)
}
