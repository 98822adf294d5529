package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
	"github.com/indieneer/backend/internal/services"
)

type productServiceStub struct {
	get    func(ctx context.Context, id string) (*models.Product, error)
	getAll func(ctx context.Context) ([]models.Product, error)
	create func(ctx context.Context, input models.CreateProduct) (*models.Product, error)
	patch  func(ctx context.Context, id string, input models.PatchProduct) (*models.Product, error)
	delete func(ctx context.Context, id string) (*models.Product, error)
	search func(ctx context.Context, query string, page int64) ([]repository.SearchResult, *services.SearchMeta, error)
}

func (s *productServiceStub) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.get(ctx, id)
}

func (s *productServiceStub) GetAll(ctx context.Context) ([]models.Product, error) {
	return s.getAll(ctx)
}

func (s *productServiceStub) Create(ctx context.Context, input models.CreateProduct) (*models.Product, error) {
	return s.create(ctx, input)
}

func (s *productServiceStub) Patch(ctx context.Context, id string, input models.PatchProduct) (*models.Product, error) {
	return s.patch(ctx, id, input)
}

func (s *productServiceStub) Delete(ctx context.Context, id string) (*models.Product, error) {
	return s.delete(ctx, id)
}

func (s *productServiceStub) Search(ctx context.Context, query string, page int64) ([]repository.SearchResult, *services.SearchMeta, error) {
	return s.search(ctx, query, page)
}

func TestProductHandlerSearch(t *testing.T) {
	stub := &productServiceStub{
		search: func(ctx context.Context, query string, page int64) ([]repository.SearchResult, *services.SearchMeta, error) {
			assert.Equal(t, "hollow", query)
			assert.Equal(t, int64(2), page)
			return []repository.SearchResult{{ID: primitive.NewObjectID(), Name: "Hollow Knight"}},
				&services.SearchMeta{TotalCount: 16, ItemsPerPage: 15, ItemsOnPage: 1, PageCount: 2, Page: 2},
				nil
		},
	}
	handler := NewProductHandler(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/search?query=hollow&page=2", nil)
	httpx.Handler(handler.Search).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "ok", envelope.Status)

	meta, ok := envelope.Meta.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(16), meta["total_count"])
	assert.Equal(t, float64(15), meta["items_per_page"])
	assert.Equal(t, float64(2), meta["page_count"])
	assert.Equal(t, float64(2), meta["page"])
}

func TestProductHandlerCreateValidation(t *testing.T) {
	handler := NewProductHandler(&productServiceStub{})

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/v1/admin/products", `{"name": "Celeste"}`)
	httpx.Handler(handler.Create).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, `missing required field "type"`, decodeEnvelope(t, rec).Error)
}

func TestProductHandlerGetAll(t *testing.T) {
	stub := &productServiceStub{
		getAll: func(ctx context.Context) ([]models.Product, error) {
			return []models.Product{{Name: "Celeste"}, {Name: "Hades"}}, nil
		},
	}
	handler := NewProductHandler(stub)

	rec := httptest.NewRecorder()
	httpx.Handler(handler.GetAll).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := decodeEnvelope(t, rec).Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 2)
}
