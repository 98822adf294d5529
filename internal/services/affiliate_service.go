package services

import (
	"context"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
)

// AffiliateService encapsulates affiliate logic.
type AffiliateService struct {
	repo *repository.AffiliateRepository
}

// NewAffiliateService creates a new instance of AffiliateService.
func NewAffiliateService(repo *repository.AffiliateRepository) *AffiliateService {
	return &AffiliateService{repo: repo}
}

func (s *AffiliateService) Get(ctx context.Context, id string) (*models.Affiliate, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	affiliate, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, apperrors.NewNotFound("Affiliate", id)
	}
	return affiliate, nil
}

func (s *AffiliateService) GetAll(ctx context.Context) ([]models.Affiliate, error) {
	return s.repo.GetAll(ctx)
}

func (s *AffiliateService) Create(ctx context.Context, input models.CreateAffiliate) (*models.Affiliate, error) {
	reviews, err := models.ObjectIDsFromHex(input.Reviews)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &models.Affiliate{
		Name:         input.Name,
		Code:         input.Code,
		BecameSeller: input.BecameSeller,
		Sales:        input.Sales,
		Bio:          input.Bio,
		Enabled:      input.Enabled,
		LogoURL:      input.LogoURL,
		Reviews:      reviews,
	})
}

func (s *AffiliateService) Patch(ctx context.Context, id string, input models.PatchAffiliate) (*models.Affiliate, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	fields, err := input.Fields()
	if err != nil {
		return nil, err
	}
	return s.repo.Patch(ctx, oid, fields)
}

func (s *AffiliateService) Delete(ctx context.Context, id string) (*models.Affiliate, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, oid)
}
