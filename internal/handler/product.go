package handler

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
	"github.com/asalem/souq/internal/service"
)

// ProductHandler handles product CRUD and the filtered catalog listing.
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	Title              string   `json:"title" validate:"required,min=3,max=200"`
	Description        string   `json:"description" validate:"required,min=10"`
	Quantity           int      `json:"quantity" validate:"required,gt=0"`
	Price              float64  `json:"price" validate:"required,gt=0"`
	PriceAfterDiscount float64  `json:"priceAfterDiscount,omitempty" validate:"omitempty,gte=0"`
	ImageCover         string   `json:"imageCover,omitempty" validate:"omitempty,url"`
	Images             []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Colors             []string `json:"colors,omitempty"`
	Category           string   `json:"category" validate:"required,len=24,hexadecimal"`
	SubCategory        string   `json:"subCategory,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Brand              string   `json:"brand,omitempty" validate:"omitempty,len=24,hexadecimal"`
}

type updateProductRequest struct {
	Title              *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description        *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Quantity           *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Price              *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	PriceAfterDiscount *float64 `json:"priceAfterDiscount,omitempty" validate:"omitempty,gte=0"`
	ImageCover         *string  `json:"imageCover,omitempty" validate:"omitempty,url"`
	Images             []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Colors             []string `json:"colors,omitempty"`
	Category           *string  `json:"category,omitempty" validate:"omitempty,len=24,hexadecimal"`
	SubCategory        *string  `json:"subCategory,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Brand              *string  `json:"brand,omitempty" validate:"omitempty,len=24,hexadecimal"`
}

// hexToObjectID parses an optional hex reference, NilObjectID when empty.
func hexToObjectID(op, name, raw string) (primitive.ObjectID, error) {
	if raw == "" {
		return primitive.NilObjectID, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, domain.Errorf(domain.EINVALID, op, "invalid %s id", name)
	}
	return id, nil
}

// Create handles POST /api/v1/products (admin).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ProductHandler.Create"

	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	in := service.CreateProductInput{
		Title:              req.Title,
		Description:        req.Description,
		Quantity:           req.Quantity,
		Price:              req.Price,
		PriceAfterDiscount: req.PriceAfterDiscount,
		ImageCover:         req.ImageCover,
		Images:             req.Images,
		Colors:             req.Colors,
	}

	var err error
	if in.Category, err = hexToObjectID(op, "category", req.Category); err != nil {
		respondError(w, r, err)
		return
	}
	if in.SubCategory, err = hexToObjectID(op, "subCategory", req.SubCategory); err != nil {
		respondError(w, r, err)
		return
	}
	if in.Brand, err = hexToObjectID(op, "brand", req.Brand); err != nil {
		respondError(w, r, err)
		return
	}

	product, err := h.products.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, product)
}

// Get handles GET /api/v1/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, product)
}

// Update handles PUT /api/v1/products/{id} (admin).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ProductHandler.Update"

	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	in := service.UpdateProductInput{
		Title:              req.Title,
		Description:        req.Description,
		Quantity:           req.Quantity,
		Price:              req.Price,
		PriceAfterDiscount: req.PriceAfterDiscount,
		ImageCover:         req.ImageCover,
		Images:             req.Images,
		Colors:             req.Colors,
	}

	for _, ref := range []struct {
		raw  *string
		name string
		dst  **primitive.ObjectID
	}{
		{req.Category, "category", &in.Category},
		{req.SubCategory, "subCategory", &in.SubCategory},
		{req.Brand, "brand", &in.Brand},
	} {
		if ref.raw == nil {
			continue
		}
		parsed, err := hexToObjectID(op, ref.name, *ref.raw)
		if err != nil {
			respondError(w, r, err)
			return
		}
		*ref.dst = &parsed
	}

	product, err := h.products.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, product)
}

// Delete handles DELETE /api/v1/products/{id} (admin).
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "product deleted", nil)
}

// List handles GET /api/v1/products with keyword, category, and range filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ProductHandler.List"

	values := r.URL.Query()
	f := domain.ProductFilter{
		Keyword:   values.Get("keyword"),
		PriceMin:  queryFloat(values, "priceMin"),
		PriceMax:  queryFloat(values, "priceMax"),
		SoldMin:   queryFloat(values, "soldMin"),
		SoldMax:   queryFloat(values, "soldMax"),
		RatingMin: queryFloat(values, "ratingMin"),
		RatingMax: queryFloat(values, "ratingMax"),
	}

	if raw := values.Get("category"); raw != "" {
		categoryID, err := hexToObjectID(op, "category", raw)
		if err != nil {
			respondError(w, r, err)
			return
		}
		f.CategoryID = categoryID
	}

	q, err := listQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	products, p, err := h.products.List(r.Context(), q, f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, products, p)
}
