package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
)

// PlatformService is the platform surface the handler depends on.
type PlatformService interface {
	Get(ctx context.Context, id string) (*models.Platform, error)
	GetAll(ctx context.Context, enabled *bool) ([]models.Platform, error)
	Create(ctx context.Context, input models.CreatePlatform) (*models.Platform, error)
	Patch(ctx context.Context, id string, input models.PatchPlatform) (*models.Platform, error)
	Delete(ctx context.Context, id string) (*models.Platform, error)
	GetOS(ctx context.Context, platformID string) ([]models.PlatformOS, error)
}

// PlatformHandler handles HTTP requests related to platforms.
type PlatformHandler struct {
	Service PlatformService
}

// NewPlatformHandler creates a new instance of PlatformHandler.
func NewPlatformHandler(service PlatformService) *PlatformHandler {
	return &PlatformHandler{Service: service}
}

// GetAll handles GET /platforms with an optional enabled filter.
func (h *PlatformHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	var enabled *bool
	switch r.URL.Query().Get("enabled") {
	case "true":
		v := true
		enabled = &v
	case "false":
		v := false
		enabled = &v
	}

	platforms, err := h.Service.GetAll(r.Context(), enabled)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, platforms)
	return nil
}

// Get handles GET /platforms/{id}.
func (h *PlatformHandler) Get(w http.ResponseWriter, r *http.Request) error {
	platform, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, platform)
	return nil
}

// GetOS handles GET /platforms/{id}/os.
func (h *PlatformHandler) GetOS(w http.ResponseWriter, r *http.Request) error {
	oses, err := h.Service.GetOS(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, oses)
	return nil
}

// Create handles POST /admin/platforms.
func (h *PlatformHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var input models.CreatePlatform
	if err := decodeBody(r, &input); err != nil {
		return err
	}
	if err := requireFields([]requiredField{{"name", input.Name}}); err != nil {
		return err
	}

	platform, err := h.Service.Create(r.Context(), input)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusCreated, platform)
	return nil
}

// Patch handles PATCH /admin/platforms/{id}.
func (h *PlatformHandler) Patch(w http.ResponseWriter, r *http.Request) error {
	var input models.PatchPlatform
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	platform, err := h.Service.Patch(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, platform)
	return nil
}

// Delete handles DELETE /admin/platforms/{id}.
func (h *PlatformHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	platform, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, deletedMessage("Platform", platform.ID.Hex()))
	return nil
}
