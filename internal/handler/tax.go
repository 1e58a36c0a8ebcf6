package handler

import (
	"net/http"

	"github.com/asalem/souq/internal/service"
)

// TaxHandler handles the singleton tax configuration (admin only).
type TaxHandler struct {
	taxes service.TaxService
}

// NewTaxHandler creates a new tax handler.
func NewTaxHandler(taxes service.TaxService) *TaxHandler {
	return &TaxHandler{taxes: taxes}
}

type setTaxRequest struct {
	TaxPrice      float64 `json:"taxPrice" validate:"gte=0"`
	ShippingPrice float64 `json:"shippingPrice" validate:"gte=0"`
}

// Set handles POST /api/v1/tax, creating the configuration on first call.
func (h *TaxHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setTaxRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	tax, err := h.taxes.CreateOrUpdate(r.Context(), req.TaxPrice, req.ShippingPrice)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, tax)
}

// Get handles GET /api/v1/tax.
func (h *TaxHandler) Get(w http.ResponseWriter, r *http.Request) {
	tax, err := h.taxes.Get(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, tax)
}

// Reset handles DELETE /api/v1/tax, zeroing both charges.
func (h *TaxHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.taxes.Reset(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "tax configuration reset", nil)
}
