package handlers

import (
	"context"
	"net/http"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
)

// TagService is the tag surface the handler depends on.
type TagService interface {
	GetAll(ctx context.Context) ([]models.Tag, error)
}

// TagHandler handles HTTP requests related to tags.
type TagHandler struct {
	Service TagService
}

// NewTagHandler creates a new instance of TagHandler.
func NewTagHandler(service TagService) *TagHandler {
	return &TagHandler{Service: service}
}

// GetAll handles GET /tags.
func (h *TagHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	tags, err := h.Service.GetAll(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, tags)
	return nil
}
