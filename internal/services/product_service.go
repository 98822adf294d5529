package services

import (
	"context"
	"math"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
)

// ProductService encapsulates product catalog logic and the public
// search aggregation.
type ProductService struct {
	repo *repository.ProductRepository
}

// NewProductService creates a new instance of ProductService.
func NewProductService(repo *repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NewNotFound("Product", id)
	}
	return product, nil
}

func (s *ProductService) GetAll(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProductService) Create(ctx context.Context, input models.CreateProduct) (*models.Product, error) {
	platforms, err := models.ObjectIDsFromHex(input.Platforms)
	if err != nil {
		return nil, err
	}
	genres, err := models.ObjectIDsFromHex(input.Genres)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &models.Product{
		Type:                input.Type,
		Name:                input.Name,
		RequiredAge:         input.RequiredAge,
		DetailedDescription: input.DetailedDescription,
		ShortDescription:    input.ShortDescription,
		SupportedLanguages:  input.SupportedLanguages,
		Developers:          input.Developers,
		Publishers:          input.Publishers,
		Platforms:           platforms,
		Genres:              genres,
		ReleaseDate:         input.ReleaseDate,
		Media:               input.Media,
		Requirements:        input.Requirements,
	})
}

func (s *ProductService) Patch(ctx context.Context, id string, input models.PatchProduct) (*models.Product, error) {
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

func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, oid)
}

// SearchMeta describes one page of search results.
type SearchMeta struct {
	TotalCount   int64 `json:"total_count"`
	ItemsPerPage int   `json:"items_per_page"`
	ItemsOnPage  int   `json:"items_on_page"`
	PageCount    int64 `json:"page_count"`
	Page         int64 `json:"page"`
}

// Search runs the paged, case-insensitive name search with genres
// joined from tags.
func (s *ProductService) Search(ctx context.Context, query string, page int64) ([]repository.SearchResult, *SearchMeta, error) {
	if page < 1 {
		page = 1
	}

	results, total, err := s.repo.Search(ctx, query, page)
	if err != nil {
		return nil, nil, err
	}

	meta := &SearchMeta{
		TotalCount:   total,
		ItemsPerPage: repository.SearchPageSize,
		ItemsOnPage:  len(results),
		PageCount:    int64(math.Ceil(float64(total) / float64(repository.SearchPageSize))),
		Page:         page,
	}
	return results, meta, nil
}
