package services

import (
	"context"

	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
)

// BackgroundJobService exposes the read-only background job list.
type BackgroundJobService struct {
	repo *repository.BackgroundJobRepository
}

// NewBackgroundJobService creates a new instance of BackgroundJobService.
func NewBackgroundJobService(repo *repository.BackgroundJobRepository) *BackgroundJobService {
	return &BackgroundJobService{repo: repo}
}

func (s *BackgroundJobService) GetAll(ctx context.Context) ([]models.BackgroundJob, error) {
	return s.repo.GetAll(ctx)
}
