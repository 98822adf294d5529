package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
)

// GameGuessService is the recorded-guess surface the handler depends on.
type GameGuessService interface {
	Get(ctx context.Context, id string) (*models.GameGuess, error)
	GetAll(ctx context.Context) ([]models.GameGuess, error)
	Patch(ctx context.Context, id string, input models.PatchGameGuess) (*models.GameGuess, error)
	Delete(ctx context.Context, id string) (*models.GameGuess, error)
}

// GameGuessHandler handles admin HTTP requests over recorded guesses.
type GameGuessHandler struct {
	Service GameGuessService
}

// NewGameGuessHandler creates a new instance of GameGuessHandler.
func NewGameGuessHandler(service GameGuessService) *GameGuessHandler {
	return &GameGuessHandler{Service: service}
}

// GetAll handles GET /admin/game_guesses.
func (h *GameGuessHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	guesses, err := h.Service.GetAll(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, guesses)
	return nil
}

// Get handles GET /admin/game_guesses/{id}.
func (h *GameGuessHandler) Get(w http.ResponseWriter, r *http.Request) error {
	guess, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, guess)
	return nil
}

// Patch handles PATCH /admin/game_guesses/{id}.
func (h *GameGuessHandler) Patch(w http.ResponseWriter, r *http.Request) error {
	var input models.PatchGameGuess
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	guess, err := h.Service.Patch(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, guess)
	return nil
}

// Delete handles DELETE /admin/game_guesses/{id}.
func (h *GameGuessHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	guess, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, deletedMessage("Game guess", guess.ID.Hex()))
	return nil
}
