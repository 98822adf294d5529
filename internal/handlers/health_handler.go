package handlers

import (
	"net/http"

	"github.com/indieneer/backend/internal/config"
	"github.com/indieneer/backend/internal/httpx"
)

// HealthHandler reports service liveness and the running version.
type HealthHandler struct{}

// NewHealthHandler creates a new instance of HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) error {
	httpx.WriteData(w, http.StatusOK, map[string]string{"version": config.Version})
	return nil
}
