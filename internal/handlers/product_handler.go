package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
	"github.com/indieneer/backend/internal/services"
)

// ProductService is the product surface the handler depends on.
type ProductService interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, input models.CreateProduct) (*models.Product, error)
	Patch(ctx context.Context, id string, input models.PatchProduct) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
	Search(ctx context.Context, query string, page int64) ([]repository.SearchResult, *services.SearchMeta, error)
}

// ProductHandler handles HTTP requests related to products.
type ProductHandler struct {
	Service ProductService
}

// NewProductHandler creates a new instance of ProductHandler.
func NewProductHandler(service ProductService) *ProductHandler {
	return &ProductHandler{Service: service}
}

// GetAll handles GET /products.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	products, err := h.Service.GetAll(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, products)
	return nil
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) error {
	product, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, product)
	return nil
}

// Create handles POST /admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var input models.CreateProduct
	if err := decodeBody(r, &input); err != nil {
		return err
	}
	if err := requireFields([]requiredField{
		{"name", input.Name},
		{"type", input.Type},
	}); err != nil {
		return err
	}

	product, err := h.Service.Create(r.Context(), input)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusCreated, product)
	return nil
}

// Patch handles PATCH /admin/products/{id}.
func (h *ProductHandler) Patch(w http.ResponseWriter, r *http.Request) error {
	var input models.PatchProduct
	if err := decodeBody(r, &input); err != nil {
		return err
	}

	product, err := h.Service.Patch(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, product)
	return nil
}

// Delete handles DELETE /admin/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	product, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	httpx.WriteData(w, http.StatusOK, deletedMessage("Product", product.ID.Hex()))
	return nil
}

// Search handles GET /search on both API versions.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query().Get("query")
	page := pageParam(r)

	results, meta, err := h.Service.Search(r.Context(), query, page)
	if err != nil {
		return err
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.NewSuccessResponseWithMeta(results, meta))
	return nil
}
