package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/indieneer/backend/internal/config"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
	"github.com/indieneer/backend/internal/services"
	"github.com/indieneer/backend/pkg/logger"
)

type tagServiceStub struct {
	getAll func(ctx context.Context) ([]models.Tag, error)
}

func (s *tagServiceStub) GetAll(ctx context.Context) ([]models.Tag, error) {
	return s.getAll(ctx)
}

func newTestRouter(t *testing.T, h *Handlers) http.Handler {
	t.Helper()
	logger.InitLogger(false)

	if h.Health == nil {
		h.Health = NewHealthHandler()
	}

	cfg := &config.Config{
		Env:            "development",
		Auth0Domain:    "indieneer.test",
		Auth0Audience:  "https://api.indieneer.test",
		Auth0Namespace: "https://indieneer.com",
	}
	return NewRouter(cfg, nil, h)
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(t, &Handlers{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, config.Version, data["version"])
}

func TestRouterPublicRoutes(t *testing.T) {
	t.Run("tags need no authentication", func(t *testing.T) {
		router := newTestRouter(t, &Handlers{
			Tags: NewTagHandler(&tagServiceStub{
				getAll: func(ctx context.Context) ([]models.Tag, error) {
					return []models.Tag{{ID: primitive.NewObjectID(), Name: "Roguelike"}}, nil
				},
			}),
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tags", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("search is served on both versions", func(t *testing.T) {
		var queries []string
		router := newTestRouter(t, &Handlers{
			Products: NewProductHandler(&productServiceStub{
				search: func(ctx context.Context, query string, page int64) ([]repository.SearchResult, *services.SearchMeta, error) {
					queries = append(queries, query)
					return []repository.SearchResult{}, &services.SearchMeta{Page: page, ItemsPerPage: repository.SearchPageSize}, nil
				},
			}),
		})

		for _, target := range []string{"/v1/search?query=hades", "/v2/search?query=hades"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusOK, rec.Code, target)
		}
		assert.Equal(t, []string{"hades", "hades"}, queries)
	})
}

func TestRouterAdminRequiresAuth(t *testing.T) {
	router := newTestRouter(t, &Handlers{})

	targets := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/admin/profiles"},
		{http.MethodPost, "/v1/admin/platforms"},
		{http.MethodGet, "/v1/admin/background_jobs"},
		{http.MethodGet, "/v1/profiles/me"},
	}

	for _, target := range targets {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(target.method, target.path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", target.method, target.path)
		assert.Equal(t, "authorization_header_missing", decodeEnvelope(t, rec).Error)
	}
}

func TestRouterAnonymousGuessSubmission(t *testing.T) {
	gameID := primitive.NewObjectID()
	router := newTestRouter(t, &Handlers{
		GuessGames: NewGuessGameHandler(&guessGameServiceStub{
			submitGuess: func(ctx context.Context, id, ip, profileID, productID string, data map[string]interface{}) (*models.GameGuess, error) {
				assert.Empty(t, profileID)
				return &models.GameGuess{ID: primitive.NewObjectID()}, nil
			},
		}),
	})

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/v1/guess_games/"+gameID.Hex()+"/guesses", `{"product_id": "`+primitive.NewObjectID().Hex()+`"}`)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t, &Handlers{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
