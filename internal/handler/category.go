package handler

import (
	"net/http"

	"github.com/asalem/souq/internal/service"
)

// CategoryHandler handles category CRUD routes.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type createCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Image string `json:"image,omitempty" validate:"omitempty,url"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Image *string `json:"image,omitempty" validate:"omitempty,url"`
}

// Create handles POST /api/v1/categories (admin).
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	category, err := h.categories.Create(r.Context(), req.Name, req.Image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, category)
}

// Get handles GET /api/v1/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, category)
}

// Update handles PUT /api/v1/categories/{id} (admin).
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	category, err := h.categories.Update(r.Context(), id, req.Name, req.Image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, category)
}

// Delete handles DELETE /api/v1/categories/{id} (admin).
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "category deleted", nil)
}

// List handles GET /api/v1/categories with an optional name filter.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, categories)
}
