package handler

import (
	"net/http"

	"github.com/asalem/souq/internal/domain"
	"github.com/asalem/souq/internal/middleware"
	"github.com/asalem/souq/internal/service"
)

// CartHandler handles the authenticated user's cart plus the admin listing.
type CartHandler struct {
	carts service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addItemRequest struct {
	Product string `json:"product" validate:"required,len=24,hexadecimal"`
}

type updateItemRequest struct {
	Quantity *int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Color    *string `json:"color,omitempty" validate:"omitempty,max=50"`
}

type applyCouponRequest struct {
	Coupon string `json:"coupon" validate:"required,min=2,max=50"`
}

// AddItem handles POST /api/v1/carts. A first-time add returns 201, an
// increment of an existing line returns 200; the message says which.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "handler.CartHandler.AddItem"

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	productID, err := hexToObjectID(op, "product", req.Product)
	if err != nil {
		respondError(w, r, err)
		return
	}

	mutation, err := h.carts.AddItem(r.Context(), middleware.GetUserID(r.Context()), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	status := http.StatusOK
	if mutation.Created {
		status = http.StatusCreated
	}
	respondMessage(w, r, status, mutation.Message, mutation.Cart)
}

// UpdateItem handles PUT /api/v1/carts/{productId}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	const op = "handler.CartHandler.UpdateItem"

	productID, err := pathObjectID(r, "productId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	// omitempty skips a pointer to zero, so the bound is checked here.
	if req.Quantity != nil && *req.Quantity <= 0 {
		respondError(w, r, domain.Invalid(op, "quantity must be greater than zero"))
		return
	}

	mutation, err := h.carts.UpdateItem(r.Context(), middleware.GetUserID(r.Context()), productID, service.UpdateItemInput{
		Quantity: req.Quantity,
		Color:    req.Color,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	status := http.StatusOK
	if mutation.Created {
		status = http.StatusCreated
	}
	respondMessage(w, r, status, mutation.Message, mutation.Cart)
}

// RemoveItem handles DELETE /api/v1/carts/item/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathObjectID(r, "productId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), middleware.GetUserID(r.Context()), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "product removed from cart", cart)
}

// ApplyCoupon handles POST /api/v1/carts/coupon.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req applyCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	cart, err := h.carts.ApplyCoupon(r.Context(), middleware.GetUserID(r.Context()), req.Coupon)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "coupon applied to cart", cart)
}

// GetMyCart handles GET /api/v1/carts/me.
func (h *CartHandler) GetMyCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.carts.GetMyCart(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, view)
}

// List handles GET /api/v1/carts (admin).
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	views, p, err := h.carts.ListCarts(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, views, p)
}

// Delete handles DELETE /api/v1/carts/{id}.
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.carts.DeleteCart(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "cart deleted", nil)
}
