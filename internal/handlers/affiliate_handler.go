package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
)

// AffiliateService is the affiliate surface the handler depends on.
type AffiliateService interface {
	Get(ctx context.Context, id string) (*models.Affiliate, error)
	GetAll(ctx context.Context) ([]models.Affiliate, error)
	Create(ctx context.Context, input models.CreateAffiliate) (*models.Affiliate, error)
	Patch(ctx context.Context, id string, input models.PatchAffiliate) (*models.Affiliate, error)
	Delete(ctx context.Context, id string) (*models.Affiliate, error)
}

// AffiliateHandler handles HTTP requests related to affiliates.
type AffiliateHandler struct {
	Service AffiliateService
}

// NewAffiliateHandler creates a new instance of AffiliateHandler.
func NewAffiliateHandler(service AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{Service: service}
}

// GetAll handles GET /admin/affiliates.
func (h *AffiliateHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	affiliates, err := h.Service.GetAll(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, affiliates)
	return nil
}

// Get handles GET /admin/affiliates/{id}.
func (h *AffiliateHandler) Get(w http.ResponseWriter, r *http.Request) error {
	affiliate, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, affiliate)
	return nil
}

// Create handles POST /admin/affiliates.
func (h *AffiliateHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var input models.CreateAffiliate
	if err := decodeBody(r, &input); err != nil {
		return err
	}
	if err := requireFields([]requiredField{{"name", input.Name}}); err != nil {
		return err
	}

	affiliate, err := h.Service.Create(r.Context(), input)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusCreated, affiliate)
	return nil
}

// Patch handles PATCH /admin/affiliates/{id}.
func (h *AffiliateHandler) Patch(w http.ResponseWriter, r *http.Request) error {
	var input models.PatchAffiliate
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	affiliate, err := h.Service.Patch(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, affiliate)
	return nil
}

// Delete handles DELETE /admin/affiliates/{id}.
func (h *AffiliateHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	affiliate, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, deletedMessage("Affiliate", affiliate.ID.Hex()))
	return nil
}
