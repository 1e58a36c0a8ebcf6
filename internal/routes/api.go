package routes

import (
	"net/http"

	"github.com/asalem/souq/internal/middleware"
	"github.com/asalem/souq/internal/router"
)

// Register mounts the whole API under /api/v1 plus the ops endpoints.
func Register(r *router.Router, deps Deps) {
	// Ops endpoints stay outside the versioned prefix.
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle(http.MethodGet, "/metrics", deps.Metrics.Handler())

	// Credential endpoints get the strict limiter; they are the ones worth
	// brute-forcing.
	strict := middleware.RateLimit(middleware.StrictRateLimiterConfig())
	r.Post("/api/v1/auth/sign-up", deps.Auth.SignUp, strict)
	r.Post("/api/v1/auth/sign-in", deps.Auth.SignIn, strict)
	r.Post("/api/v1/auth/reset-password", deps.Auth.ResetPassword, strict)
	r.Post("/api/v1/auth/verify-code", deps.Auth.VerifyCode, strict)
	r.Post("/api/v1/auth/change-password", deps.Auth.ChangePassword, strict)

	authed := r.Group(middleware.RequireAuth(deps.Tokens))
	admin := authed.Group(middleware.RequireAdmin)

	// Account self-service. Registered before /users/{id} so "me" never
	// parses as an id.
	authed.Get("/api/v1/users/me", deps.Users.GetMe)
	authed.Put("/api/v1/users/me", deps.Users.UpdateMe)
	authed.Delete("/api/v1/users/me", deps.Users.DeleteMe)

	// Account management (admin).
	admin.Post("/api/v1/users", deps.Users.Create)
	admin.Get("/api/v1/users", deps.Users.List)
	admin.Get("/api/v1/users/{id}", deps.Users.Get)
	admin.Put("/api/v1/users/{id}", deps.Users.Update)
	admin.Delete("/api/v1/users/{id}", deps.Users.Delete)

	// Catalog: public reads, admin writes.
	r.Get("/api/v1/categories", deps.Categories.List)
	r.Get("/api/v1/categories/{id}", deps.Categories.Get)
	admin.Post("/api/v1/categories", deps.Categories.Create)
	admin.Put("/api/v1/categories/{id}", deps.Categories.Update)
	admin.Delete("/api/v1/categories/{id}", deps.Categories.Delete)

	r.Get("/api/v1/subcategories", deps.SubCategories.List)
	r.Get("/api/v1/subcategories/{id}", deps.SubCategories.Get)
	admin.Post("/api/v1/subcategories", deps.SubCategories.Create)
	admin.Put("/api/v1/subcategories/{id}", deps.SubCategories.Update)
	admin.Delete("/api/v1/subcategories/{id}", deps.SubCategories.Delete)

	r.Get("/api/v1/brands", deps.Brands.List)
	r.Get("/api/v1/brands/{id}", deps.Brands.Get)
	admin.Post("/api/v1/brands", deps.Brands.Create)
	admin.Put("/api/v1/brands/{id}", deps.Brands.Update)
	admin.Delete("/api/v1/brands/{id}", deps.Brands.Delete)

	admin.Get("/api/v1/suppliers", deps.Suppliers.List)
	admin.Get("/api/v1/suppliers/{id}", deps.Suppliers.Get)
	admin.Post("/api/v1/suppliers", deps.Suppliers.Create)
	admin.Put("/api/v1/suppliers/{id}", deps.Suppliers.Update)
	admin.Delete("/api/v1/suppliers/{id}", deps.Suppliers.Delete)

	r.Get("/api/v1/products", deps.Products.List)
	r.Get("/api/v1/products/{id}", deps.Products.Get)
	admin.Post("/api/v1/products", deps.Products.Create)
	admin.Put("/api/v1/products/{id}", deps.Products.Update)
	admin.Delete("/api/v1/products/{id}", deps.Products.Delete)

	// Reviews: anyone can read, authoring requires an account.
	r.Get("/api/v1/reviews/product/{productId}", deps.Reviews.ListByProduct)
	authed.Get("/api/v1/reviews/me", deps.Reviews.ListMine)
	r.Get("/api/v1/reviews/{id}", deps.Reviews.Get)
	authed.Post("/api/v1/reviews", deps.Reviews.Create)
	authed.Put("/api/v1/reviews/{id}", deps.Reviews.Update)
	authed.Delete("/api/v1/reviews/{id}", deps.Reviews.Delete)

	// Coupons are admin-only; customers only ever see them by name when
	// applying one to a cart.
	admin.Post("/api/v1/coupons", deps.Coupons.Create)
	admin.Get("/api/v1/coupons", deps.Coupons.List)
	admin.Get("/api/v1/coupons/{id}", deps.Coupons.Get)
	admin.Put("/api/v1/coupons/{id}", deps.Coupons.Update)
	admin.Delete("/api/v1/coupons/{id}", deps.Coupons.Delete)

	// Carts.
	authed.Post("/api/v1/carts", deps.Carts.AddItem)
	authed.Get("/api/v1/carts/me", deps.Carts.GetMyCart)
	authed.Post("/api/v1/carts/coupon", deps.Carts.ApplyCoupon)
	authed.Put("/api/v1/carts/{productId}", deps.Carts.UpdateItem)
	authed.Delete("/api/v1/carts/item/{productId}", deps.Carts.RemoveItem)
	admin.Get("/api/v1/carts", deps.Carts.List)
	authed.Delete("/api/v1/carts/{id}", deps.Carts.Delete)

	// Tax configuration (admin).
	admin.Post("/api/v1/tax", deps.Tax.Set)
	admin.Get("/api/v1/tax", deps.Tax.Get)
	admin.Delete("/api/v1/tax", deps.Tax.Reset)

	// Requested products.
	authed.Post("/api/v1/request-product", deps.RequestProducts.Create)
	authed.Get("/api/v1/request-product/me", deps.RequestProducts.ListMine)
	admin.Get("/api/v1/request-product", deps.RequestProducts.List)
	authed.Get("/api/v1/request-product/{id}", deps.RequestProducts.Get)
	authed.Put("/api/v1/request-product/{id}", deps.RequestProducts.Update)
	authed.Delete("/api/v1/request-product/{id}", deps.RequestProducts.Delete)
}
