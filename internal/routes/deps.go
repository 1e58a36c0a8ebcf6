// Package routes wires handlers, auth gates, and rate limits onto the
// router. Route registration is kept apart from handler logic so the full
// API surface is readable in one place.
package routes

import (
	"github.com/asalem/souq/internal/auth"
	"github.com/asalem/souq/internal/handler"
	"github.com/asalem/souq/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Tokens  *auth.Tokens
	Metrics *middleware.Metrics

	Auth            *handler.AuthHandler
	Users           *handler.UserHandler
	Categories      *handler.CategoryHandler
	SubCategories   *handler.SubCategoryHandler
	Brands          *handler.BrandHandler
	Suppliers       *handler.SupplierHandler
	Products        *handler.ProductHandler
	Reviews         *handler.ReviewHandler
	Coupons         *handler.CouponHandler
	Carts           *handler.CartHandler
	Tax             *handler.TaxHandler
	RequestProducts *handler.RequestProductHandler
}
