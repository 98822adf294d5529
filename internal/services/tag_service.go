package services

import (
	"context"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
)

// TagService encapsulates tag catalog logic.
type TagService struct {
	repo *repository.TagRepository
}

// NewTagService creates a new instance of TagService.
func NewTagService(repo *repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	tag, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperrors.NewNotFound("Tag", id)
	}
	return tag, nil
}

func (s *TagService) GetAll(ctx context.Context) ([]models.Tag, error) {
	return s.repo.GetAll(ctx)
}

func (s *TagService) Create(ctx context.Context, input models.CreateTag) (*models.Tag, error) {
	return s.repo.Create(ctx, &models.Tag{Name: input.Name})
}

func (s *TagService) Patch(ctx context.Context, id string, input models.PatchTag) (*models.Tag, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Patch(ctx, oid, input.Fields())
}

func (s *TagService) Delete(ctx context.Context, id string) (*models.Tag, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, oid)
}
