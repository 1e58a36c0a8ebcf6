package handler

import (
	"net/http"

	"github.com/asalem/souq/internal/service"
)

// SupplierHandler handles supplier CRUD routes.
type SupplierHandler struct {
	suppliers service.SupplierService
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(suppliers service.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

type createSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Website string `json:"website,omitempty" validate:"omitempty,url"`
}

type updateSupplierRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Website *string `json:"website,omitempty" validate:"omitempty,url"`
}

// Create handles POST /api/v1/suppliers (admin).
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSupplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	supplier, err := h.suppliers.Create(r.Context(), req.Name, req.Website)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, supplier)
}

// Get handles GET /api/v1/suppliers/{id}.
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	supplier, err := h.suppliers.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, supplier)
}

// Update handles PUT /api/v1/suppliers/{id} (admin).
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateSupplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	supplier, err := h.suppliers.Update(r.Context(), id, req.Name, req.Website)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, supplier)
}

// Delete handles DELETE /api/v1/suppliers/{id} (admin).
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.suppliers.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "supplier deleted", nil)
}

// List handles GET /api/v1/suppliers.
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, suppliers)
}
