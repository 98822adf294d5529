package services

import (
	"context"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
)

// PlatformService encapsulates platform catalog logic.
type PlatformService struct {
	repo *repository.PlatformRepository
}

// NewPlatformService creates a new instance of PlatformService.
func NewPlatformService(repo *repository.PlatformRepository) *PlatformService {
	return &PlatformService{repo: repo}
}

func (s *PlatformService) Get(ctx context.Context, id string) (*models.Platform, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	platform, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if platform == nil {
		return nil, apperrors.NewNotFound("Platform", id)
	}
	return platform, nil
}

func (s *PlatformService) GetAll(ctx context.Context, enabled *bool) ([]models.Platform, error) {
	return s.repo.GetAll(ctx, enabled)
}

func (s *PlatformService) Create(ctx context.Context, input models.CreatePlatform) (*models.Platform, error) {
	return s.repo.Create(ctx, &models.Platform{
		Name:    input.Name,
		Enabled: input.Enabled,
		IconURL: input.IconURL,
		URL:     input.URL,
	})
}

func (s *PlatformService) Patch(ctx context.Context, id string, input models.PatchPlatform) (*models.Platform, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Patch(ctx, oid, input.Fields())
}

func (s *PlatformService) Delete(ctx context.Context, id string) (*models.Platform, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, oid)
}

// GetOS lists the operating systems registered for a platform.
func (s *PlatformService) GetOS(ctx context.Context, platformID string) ([]models.PlatformOS, error) {
	oid, err := models.ObjectIDFromHex(platformID)
	if err != nil {
		return nil, err
	}
	platform, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if platform == nil {
		return nil, apperrors.NewNotFound("Platform", platformID)
	}
	return s.repo.GetOS(ctx, oid)
}
