package handler

import (
	"net/http"
	"time"

	"github.com/asalem/souq/internal/service"
)

// CouponHandler handles coupon CRUD routes (admin only).
type CouponHandler struct {
	coupons service.CouponService
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(coupons service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type createCouponRequest struct {
	Name       string    `json:"name" validate:"required,min=2,max=50"`
	ExpiryDate time.Time `json:"expiryDate" validate:"required"`
	Discount   float64   `json:"discount" validate:"required,gt=0,lte=100"`
}

type updateCouponRequest struct {
	Name       *string    `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	Discount   *float64   `json:"discount,omitempty" validate:"omitempty,gt=0,lte=100"`
}

// Create handles POST /api/v1/coupons (admin).
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	coupon, err := h.coupons.Create(r.Context(), req.Name, req.ExpiryDate, req.Discount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, coupon)
}

// Get handles GET /api/v1/coupons/{id} (admin).
func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	coupon, err := h.coupons.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, coupon)
}

// Update handles PUT /api/v1/coupons/{id} (admin).
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	coupon, err := h.coupons.Update(r.Context(), id, req.Name, req.ExpiryDate, req.Discount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, coupon)
}

// Delete handles DELETE /api/v1/coupons/{id} (admin).
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.coupons.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "coupon deleted", nil)
}

// List handles GET /api/v1/coupons (admin).
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, coupons)
}
