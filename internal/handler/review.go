package handler

import (
	"net/http"

	"github.com/asalem/souq/internal/middleware"
	"github.com/asalem/souq/internal/service"
)

// ReviewHandler handles review routes. Reviews hang off products for
// listing and off the authenticated user for writes.
type ReviewHandler struct {
	reviews service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	Product    string `json:"product" validate:"required,len=24,hexadecimal"`
	ReviewText string `json:"reviewText,omitempty" validate:"omitempty,max=1000"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
}

type updateReviewRequest struct {
	ReviewText *string `json:"reviewText,omitempty" validate:"omitempty,max=1000"`
	Rating     *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
}

// Create handles POST /api/v1/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ReviewHandler.Create"

	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	productID, err := hexToObjectID(op, "product", req.Product)
	if err != nil {
		respondError(w, r, err)
		return
	}

	review, err := h.reviews.Create(r.Context(), middleware.GetUserID(r.Context()), productID, req.ReviewText, req.Rating)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, review)
}

// Get handles GET /api/v1/reviews/{id}.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	review, err := h.reviews.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, review)
}

// Update handles PUT /api/v1/reviews/{id}.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	review, err := h.reviews.Update(r.Context(), middleware.GetUserID(r.Context()), id, req.ReviewText, req.Rating)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, review)
}

// Delete handles DELETE /api/v1/reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := r.Context()
	if err := h.reviews.Delete(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "review deleted", nil)
}

// ListByProduct handles GET /api/v1/reviews/product/{productId}.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathObjectID(r, "productId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	q, err := listQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	reviews, p, err := h.reviews.ListByProduct(r.Context(), productID, q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, reviews, p)
}

// ListMine handles GET /api/v1/reviews/me.
func (h *ReviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	reviews, p, err := h.reviews.ListByUser(r.Context(), middleware.GetUserID(r.Context()), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, reviews, p)
}
