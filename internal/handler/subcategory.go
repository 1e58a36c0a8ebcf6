package handler

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
	"github.com/asalem/souq/internal/service"
)

// SubCategoryHandler handles sub-category CRUD routes.
type SubCategoryHandler struct {
	subCategories service.SubCategoryService
}

// NewSubCategoryHandler creates a new sub-category handler.
func NewSubCategoryHandler(subCategories service.SubCategoryService) *SubCategoryHandler {
	return &SubCategoryHandler{subCategories: subCategories}
}

type createSubCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Category string `json:"category" validate:"required,len=24,hexadecimal"`
}

type updateSubCategoryRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Category *string `json:"category,omitempty" validate:"omitempty,len=24,hexadecimal"`
}

// Create handles POST /api/v1/subcategories (admin).
func (h *SubCategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		respondError(w, r, domain.Invalid("handler.SubCategoryHandler.Create", "invalid category id"))
		return
	}

	subCategory, err := h.subCategories.Create(r.Context(), req.Name, categoryID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, subCategory)
}

// Get handles GET /api/v1/subcategories/{id}.
func (h *SubCategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	subCategory, err := h.subCategories.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, subCategory)
}

// Update handles PUT /api/v1/subcategories/{id} (admin).
func (h *SubCategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateSubCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	var categoryID *primitive.ObjectID
	if req.Category != nil {
		parsed, err := primitive.ObjectIDFromHex(*req.Category)
		if err != nil {
			respondError(w, r, domain.Invalid("handler.SubCategoryHandler.Update", "invalid category id"))
			return
		}
		categoryID = &parsed
	}

	subCategory, err := h.subCategories.Update(r.Context(), id, req.Name, categoryID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, subCategory)
}

// Delete handles DELETE /api/v1/subcategories/{id} (admin).
func (h *SubCategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.subCategories.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "sub-category deleted", nil)
}

// List handles GET /api/v1/subcategories.
func (h *SubCategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	subCategories, err := h.subCategories.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, subCategories)
}
