package handler

import (
	"net/http"

	"github.com/asalem/souq/internal/middleware"
	"github.com/asalem/souq/internal/service"
)

// RequestProductHandler handles requested-product intake routes.
type RequestProductHandler struct {
	requests service.RequestProductService
}

// NewRequestProductHandler creates a new request-product handler.
func NewRequestProductHandler(requests service.RequestProductService) *RequestProductHandler {
	return &RequestProductHandler{requests: requests}
}

type createRequestProductRequest struct {
	TitleNeed string `json:"titleNeed" validate:"required,min=2,max=200"`
	Details   string `json:"details,omitempty" validate:"omitempty,max=2000"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Category  string `json:"category,omitempty" validate:"omitempty,max=100"`
}

type updateRequestProductRequest struct {
	TitleNeed *string `json:"titleNeed,omitempty" validate:"omitempty,min=2,max=200"`
	Details   *string `json:"details,omitempty" validate:"omitempty,max=2000"`
	Quantity  *int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Category  *string `json:"category,omitempty" validate:"omitempty,max=100"`
}

// Create handles POST /api/v1/request-product.
func (h *RequestProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequestProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	request, err := h.requests.Create(r.Context(), middleware.GetUserID(r.Context()), service.RequestProductInput{
		TitleNeed: req.TitleNeed,
		Details:   req.Details,
		Quantity:  req.Quantity,
		Category:  req.Category,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, request)
}

// Get handles GET /api/v1/request-product/{id}.
func (h *RequestProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := r.Context()
	request, err := h.requests.Get(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, request)
}

// Update handles PUT /api/v1/request-product/{id}.
func (h *RequestProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateRequestProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	request, err := h.requests.Update(r.Context(), middleware.GetUserID(r.Context()), id, service.UpdateRequestProductInput{
		TitleNeed: req.TitleNeed,
		Details:   req.Details,
		Quantity:  req.Quantity,
		Category:  req.Category,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, request)
}

// Delete handles DELETE /api/v1/request-product/{id}.
func (h *RequestProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.requests.Delete(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "product request deleted", nil)
}

// List handles GET /api/v1/request-product (admin).
func (h *RequestProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	requests, p, err := h.requests.List(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, requests, p)
}

// ListMine handles GET /api/v1/request-product/me.
func (h *RequestProductHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	requests, p, err := h.requests.ListMine(r.Context(), middleware.GetUserID(r.Context()), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, requests, p)
}
