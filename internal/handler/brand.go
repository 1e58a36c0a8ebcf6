package handler

import (
	"net/http"

	"github.com/asalem/souq/internal/service"
)

// BrandHandler handles brand CRUD routes.
type BrandHandler struct {
	brands service.BrandService
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(brands service.BrandService) *BrandHandler {
	return &BrandHandler{brands: brands}
}

type createBrandRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Image string `json:"image,omitempty" validate:"omitempty,url"`
}

type updateBrandRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Image *string `json:"image,omitempty" validate:"omitempty,url"`
}

// Create handles POST /api/v1/brands (admin).
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBrandRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	brand, err := h.brands.Create(r.Context(), req.Name, req.Image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, brand)
}

// Get handles GET /api/v1/brands/{id}.
func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	brand, err := h.brands.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, brand)
}

// Update handles PUT /api/v1/brands/{id} (admin).
func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateBrandRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	brand, err := h.brands.Update(r.Context(), id, req.Name, req.Image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, brand)
}

// Delete handles DELETE /api/v1/brands/{id} (admin).
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.brands.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "brand deleted", nil)
}

// List handles GET /api/v1/brands.
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brands.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, brands)
}
