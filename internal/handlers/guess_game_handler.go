package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/pkg/middleware"
)

// GuessGameService is the guess-game surface the handler depends on.
type GuessGameService interface {
	Get(ctx context.Context, id string) (*models.GuessGame, error)
	GetAll(ctx context.Context) ([]models.GuessGame, error)
	GetToday(ctx context.Context) (*models.GuessGame, error)
	Create(ctx context.Context, input models.CreateGuessGame) (*models.GuessGame, error)
	Patch(ctx context.Context, id string, input models.PatchGuessGame) (*models.GuessGame, error)
	Delete(ctx context.Context, id string) (*models.GuessGame, error)
	SubmitGuess(ctx context.Context, gameID, ip, profileID, productID string, data map[string]interface{}) (*models.GameGuess, error)
}

// GuessGameHandler handles HTTP requests related to daily guess games.
type GuessGameHandler struct {
	Service GuessGameService
}

// NewGuessGameHandler creates a new instance of GuessGameHandler.
func NewGuessGameHandler(service GuessGameService) *GuessGameHandler {
	return &GuessGameHandler{Service: service}
}

// GetToday handles GET /guess_games/today.
func (h *GuessGameHandler) GetToday(w http.ResponseWriter, r *http.Request) error {
	game, err := h.Service.GetToday(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, game)
	return nil
}

// SubmitGuess handles POST /guess_games/{id}/guesses. Works for both
// anonymous and authenticated callers.
func (h *GuessGameHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) error {
	var input struct {
		ProductID string                 `json:"product_id"`
		Data      map[string]interface{} `json:"data"`
	}
	if err := decodeBody(r, &input); err != nil {
		return err
	}
	if err := requireFields([]requiredField{{"product_id", input.ProductID}}); err != nil {
		return err
	}

	profileID := ""
	if principal := middleware.GetPrincipal(r.Context()); principal != nil {
		profileID = principal.ProfileID
	}

	guess, err := h.Service.SubmitGuess(r.Context(), mux.Vars(r)["id"], remoteIP(r), profileID, input.ProductID, input.Data)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, guess)
	return nil
}

// GetAll handles GET /admin/guess_games.
func (h *GuessGameHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	games, err := h.Service.GetAll(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, games)
	return nil
}

// Get handles GET /admin/guess_games/{id}.
func (h *GuessGameHandler) Get(w http.ResponseWriter, r *http.Request) error {
	game, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, game)
	return nil
}

// Create handles POST /admin/guess_games.
func (h *GuessGameHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var input models.CreateGuessGame
	if err := decodeBody(r, &input); err != nil {
		return err
	}
	if err := requireFields([]requiredField{
		{"product_id", input.ProductID},
		{"type", input.Type},
	}); err != nil {
		return err
	}

	game, err := h.Service.Create(r.Context(), input)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusCreated, game)
	return nil
}

// Patch handles PATCH /admin/guess_games/{id}.
func (h *GuessGameHandler) Patch(w http.ResponseWriter, r *http.Request) error {
	var input models.PatchGuessGame
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	game, err := h.Service.Patch(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, game)
	return nil
}

// Delete handles DELETE /admin/guess_games/{id}.
func (h *GuessGameHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	game, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, deletedMessage("Guess game", game.ID.Hex()))
	return nil
}
