package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/pkg/middleware"
)

// ProfileService is the profile surface the handler depends on.
type ProfileService interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	GetByIdpID(ctx context.Context, idpID string) (*models.Profile, error)
	GetAll(ctx context.Context) ([]models.Profile, error)
	Create(ctx context.Context, input models.CreateProfile) (*models.Profile, error)
	Patch(ctx context.Context, id string, input models.PatchProfile) (*models.Profile, error)
	Delete(ctx context.Context, id string) (*models.Profile, error)
}

// ProfileHandler handles HTTP requests related to profiles.
type ProfileHandler struct {
	Service ProfileService
}

// NewProfileHandler creates a new instance of ProfileHandler.
func NewProfileHandler(service ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: service}
}

// Create handles POST /profiles. Registration is public.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var input models.CreateProfile
	if err := decodeBody(r, &input); err != nil {
		return err
	}
	if err := requireFields([]requiredField{
		{"email", input.Email},
		{"password", input.Password},
		{"nickname", input.Nickname},
	}); err != nil {
		return err
	}

	profile, err := h.Service.Create(r.Context(), input)
	if err != nil {
		return err
	}

	logrus.WithField("profileID", profile.ID.Hex()).Info("Profile registered")
	httpx.WriteData(w, http.StatusCreated, profile)
	return nil
}

// Me handles GET /profiles/me for the authenticated principal.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) error {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		return apperrors.NewAuthError("invalid_header", "missing principal", http.StatusUnauthorized)
	}

	var (
		profile *models.Profile
		err     error
	)
	if principal.ProfileID != "" {
		profile, err = h.Service.Get(r.Context(), principal.ProfileID)
	} else {
		profile, err = h.Service.GetByIdpID(r.Context(), principal.Subject)
	}
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, profile)
	return nil
}

// requireSelf enforces that the path id equals the principal's profile id.
func requireSelf(r *http.Request, id string) error {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		return apperrors.NewAuthError("invalid_header", "missing principal", http.StatusUnauthorized)
	}
	if principal.ProfileID != id {
		return apperrors.Forbidden()
	}
	return nil
}

// PatchSelf handles PATCH /profiles/{id} (self-scoped).
func (h *ProfileHandler) PatchSelf(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["id"]
	if err := requireSelf(r, id); err != nil {
		return err
	}
	return h.patch(w, r, id)
}

// DeleteSelf handles DELETE /profiles/{id} (self-scoped).
func (h *ProfileHandler) DeleteSelf(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["id"]
	if err := requireSelf(r, id); err != nil {
		return err
	}
	return h.delete(w, r, id)
}

// Get handles GET /admin/profiles/{id}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) error {
	profile, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, profile)
	return nil
}

// GetAll handles GET /admin/profiles.
func (h *ProfileHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	profiles, err := h.Service.GetAll(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, profiles)
	return nil
}

// Patch handles PATCH /admin/profiles/{id}.
func (h *ProfileHandler) Patch(w http.ResponseWriter, r *http.Request) error {
	return h.patch(w, r, mux.Vars(r)["id"])
}

// Delete handles DELETE /admin/profiles/{id}.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	return h.delete(w, r, mux.Vars(r)["id"])
}

func (h *ProfileHandler) patch(w http.ResponseWriter, r *http.Request, id string) error {
	var input models.PatchProfile
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	profile, err := h.Service.Patch(r.Context(), id, input)
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, profile)
	return nil
}

func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) error {
	profile, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, deletedMessage("Profile", profile.ID.Hex()))
	return nil
}
