package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/pkg/middleware"
)

type guessGameServiceStub struct {
	get         func(ctx context.Context, id string) (*models.GuessGame, error)
	getAll      func(ctx context.Context) ([]models.GuessGame, error)
	getToday    func(ctx context.Context) (*models.GuessGame, error)
	create      func(ctx context.Context, input models.CreateGuessGame) (*models.GuessGame, error)
	patch       func(ctx context.Context, id string, input models.PatchGuessGame) (*models.GuessGame, error)
	delete      func(ctx context.Context, id string) (*models.GuessGame, error)
	submitGuess func(ctx context.Context, gameID, ip, profileID, productID string, data map[string]interface{}) (*models.GameGuess, error)
}

func (s *guessGameServiceStub) Get(ctx context.Context, id string) (*models.GuessGame, error) {
	return s.get(ctx, id)
}

func (s *guessGameServiceStub) GetAll(ctx context.Context) ([]models.GuessGame, error) {
	return s.getAll(ctx)
}

func (s *guessGameServiceStub) GetToday(ctx context.Context) (*models.GuessGame, error) {
	return s.getToday(ctx)
}

func (s *guessGameServiceStub) Create(ctx context.Context, input models.CreateGuessGame) (*models.GuessGame, error) {
	return s.create(ctx, input)
}

func (s *guessGameServiceStub) Patch(ctx context.Context, id string, input models.PatchGuessGame) (*models.GuessGame, error) {
	return s.patch(ctx, id, input)
}

func (s *guessGameServiceStub) Delete(ctx context.Context, id string) (*models.GuessGame, error) {
	return s.delete(ctx, id)
}

func (s *guessGameServiceStub) SubmitGuess(ctx context.Context, gameID, ip, profileID, productID string, data map[string]interface{}) (*models.GameGuess, error) {
	return s.submitGuess(ctx, gameID, ip, profileID, productID, data)
}

func TestGuessGameHandlerGetToday(t *testing.T) {
	t.Run("returns the published game", func(t *testing.T) {
		oid := primitive.NewObjectID()
		stub := &guessGameServiceStub{
			getToday: func(ctx context.Context) (*models.GuessGame, error) {
				return &models.GuessGame{ID: oid, Type: "attributes"}, nil
			},
		}
		handler := NewGuessGameHandler(stub)

		rec := httptest.NewRecorder()
		httpx.Handler(handler.GetToday).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/guess_games/today", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", decodeEnvelope(t, rec).Status)
	})

	t.Run("no game published is 404", func(t *testing.T) {
		stub := &guessGameServiceStub{
			getToday: func(ctx context.Context) (*models.GuessGame, error) {
				return nil, apperrors.NewNotFound("Guess game", "")
			},
		}
		handler := NewGuessGameHandler(stub)

		rec := httptest.NewRecorder()
		httpx.Handler(handler.GetToday).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/guess_games/today", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not found", decodeEnvelope(t, rec).Status)
	})
}

func TestGuessGameHandlerSubmitGuess(t *testing.T) {
	gameID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	t.Run("anonymous guess carries ip only", func(t *testing.T) {
		stub := &guessGameServiceStub{
			submitGuess: func(ctx context.Context, id, ip, profileID, product string, data map[string]interface{}) (*models.GameGuess, error) {
				assert.Equal(t, gameID.Hex(), id)
				assert.Equal(t, "203.0.113.7", ip)
				assert.Empty(t, profileID)
				assert.Equal(t, productID.Hex(), product)
				return &models.GameGuess{ID: primitive.NewObjectID(), IP: ip}, nil
			},
		}
		handler := NewGuessGameHandler(stub)

		req := jsonRequest(http.MethodPost, "/v1/guess_games/"+gameID.Hex()+"/guesses", `{"product_id": "`+productID.Hex()+`"}`)
		req.RemoteAddr = "203.0.113.7:40000"
		req = mux.SetURLVars(req, map[string]string{"id": gameID.Hex()})

		rec := httptest.NewRecorder()
		httpx.Handler(handler.SubmitGuess).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("authenticated guess carries the profile id", func(t *testing.T) {
		profileOID := primitive.NewObjectID()
		stub := &guessGameServiceStub{
			submitGuess: func(ctx context.Context, id, ip, profileID, product string, data map[string]interface{}) (*models.GameGuess, error) {
				assert.Equal(t, profileOID.Hex(), profileID)
				return &models.GameGuess{ID: primitive.NewObjectID()}, nil
			},
		}
		handler := NewGuessGameHandler(stub)

		req := jsonRequest(http.MethodPost, "/v1/guess_games/"+gameID.Hex()+"/guesses", `{"product_id": "`+productID.Hex()+`"}`)
		req = req.WithContext(middleware.WithPrincipal(req.Context(), &middleware.Principal{ProfileID: profileOID.Hex()}))
		req = mux.SetURLVars(req, map[string]string{"id": gameID.Hex()})

		rec := httptest.NewRecorder()
		httpx.Handler(handler.SubmitGuess).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing product id is unprocessable", func(t *testing.T) {
		handler := NewGuessGameHandler(&guessGameServiceStub{})

		req := jsonRequest(http.MethodPost, "/v1/guess_games/"+gameID.Hex()+"/guesses", `{"data": {"hint": 1}}`)
		req = mux.SetURLVars(req, map[string]string{"id": gameID.Hex()})

		rec := httptest.NewRecorder()
		httpx.Handler(handler.SubmitGuess).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
