package handlers

import (
	"context"
	"net/http"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
)

// BackgroundJobService is the background job surface the handler depends on.
type BackgroundJobService interface {
	GetAll(ctx context.Context) ([]models.BackgroundJob, error)
}

// BackgroundJobHandler lists background jobs for administrators.
type BackgroundJobHandler struct {
	Service BackgroundJobService
}

// NewBackgroundJobHandler creates a new instance of BackgroundJobHandler.
func NewBackgroundJobHandler(service BackgroundJobService) *BackgroundJobHandler {
	return &BackgroundJobHandler{Service: service}
}

// GetAll handles GET /admin/background_jobs.
func (h *BackgroundJobHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	jobs, err := h.Service.GetAll(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, jobs)
	return nil
}
