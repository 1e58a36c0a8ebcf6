package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/auth"
	"github.com/asalem/souq/internal/domain"
	"github.com/asalem/souq/internal/middleware"
	"github.com/asalem/souq/internal/service"
)

// stubCartService lets each test wire only the method it exercises.
type stubCartService struct {
	addItem     func(ctx context.Context, userID, productID primitive.ObjectID) (*service.CartMutation, error)
	updateItem  func(ctx context.Context, userID, productID primitive.ObjectID, in service.UpdateItemInput) (*service.CartMutation, error)
	removeItem  func(ctx context.Context, userID, productID primitive.ObjectID) (*domain.Cart, error)
	applyCoupon func(ctx context.Context, userID primitive.ObjectID, couponName string) (*domain.Cart, error)
	getMyCart   func(ctx context.Context, userID primitive.ObjectID) (*service.CartView, error)
	listCarts   func(ctx context.Context, q domain.ListQuery) ([]service.CartView, *domain.Pagination, error)
	deleteCart  func(ctx context.Context, userID, cartID primitive.ObjectID) error
}

func (s *stubCartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID) (*service.CartMutation, error) {
	return s.addItem(ctx, userID, productID)
}

func (s *stubCartService) UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, in service.UpdateItemInput) (*service.CartMutation, error) {
	return s.updateItem(ctx, userID, productID, in)
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*domain.Cart, error) {
	return s.removeItem(ctx, userID, productID)
}

func (s *stubCartService) ApplyCoupon(ctx context.Context, userID primitive.ObjectID, couponName string) (*domain.Cart, error) {
	return s.applyCoupon(ctx, userID, couponName)
}

func (s *stubCartService) GetMyCart(ctx context.Context, userID primitive.ObjectID) (*service.CartView, error) {
	return s.getMyCart(ctx, userID)
}

func (s *stubCartService) ListCarts(ctx context.Context, q domain.ListQuery) ([]service.CartView, *domain.Pagination, error) {
	return s.listCarts(ctx, q)
}

func (s *stubCartService) DeleteCart(ctx context.Context, userID, cartID primitive.ObjectID) error {
	return s.deleteCart(ctx, userID, cartID)
}

// authed attaches verified claims for the given user to the request.
func authed(r *http.Request, userID primitive.ObjectID) *http.Request {
	claims := &auth.Claims{UserID: userID.Hex(), Role: string(domain.RoleUser)}
	ctx := context.WithValue(r.Context(), middleware.ClaimsContextKey, claims)
	return r.WithContext(ctx)
}

func TestAddItemStatusReflectsCreation(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	created := true
	h := NewCartHandler(&stubCartService{
		addItem: func(ctx context.Context, gotUser, gotProduct primitive.ObjectID) (*service.CartMutation, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, productID, gotProduct)
			msg := "new product added to cart"
			if !created {
				msg = "product quantity increased in cart"
			}
			return &service.CartMutation{Cart: &domain.Cart{User: userID}, Created: created, Message: msg}, nil
		},
	})

	do := func() *httptest.ResponseRecorder {
		body := strings.NewReader(`{"product":"` + productID.Hex() + `"}`)
		r := authed(httptest.NewRequest(http.MethodPost, "/api/v1/carts", body), userID)
		w := httptest.NewRecorder()
		h.AddItem(w, r)
		return w
	}

	w := do()
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "new product added to cart")

	created = false
	w = do()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "product quantity increased in cart")
}

func TestAddItemRejectsBadProductID(t *testing.T) {
	h := NewCartHandler(&stubCartService{})

	r := authed(httptest.NewRequest(http.MethodPost, "/api/v1/carts", strings.NewReader(`{"product":"nope"}`)), primitive.NewObjectID())
	w := httptest.NewRecorder()
	h.AddItem(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateItemForwardsInput(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	h := NewCartHandler(&stubCartService{
		updateItem: func(ctx context.Context, gotUser, gotProduct primitive.ObjectID, in service.UpdateItemInput) (*service.CartMutation, error) {
			require.NotNil(t, in.Quantity)
			assert.Equal(t, 4, *in.Quantity)
			require.NotNil(t, in.Color)
			assert.Equal(t, "red", *in.Color)
			return &service.CartMutation{Cart: &domain.Cart{User: gotUser}, Message: "product quantity increased in cart"}, nil
		},
	})

	body := strings.NewReader(`{"quantity":4,"color":"red"}`)
	r := authed(httptest.NewRequest(http.MethodPut, "/api/v1/carts/"+productID.Hex(), body), userID)
	r.SetPathValue("productId", productID.Hex())
	w := httptest.NewRecorder()
	h.UpdateItem(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateItemRejectsZeroQuantity(t *testing.T) {
	h := NewCartHandler(&stubCartService{})

	productID := primitive.NewObjectID()
	r := authed(httptest.NewRequest(http.MethodPut, "/api/v1/carts/"+productID.Hex(), strings.NewReader(`{"quantity":0}`)), primitive.NewObjectID())
	r.SetPathValue("productId", productID.Hex())
	w := httptest.NewRecorder()
	h.UpdateItem(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCartForbiddenPassesThrough(t *testing.T) {
	cartID := primitive.NewObjectID()

	h := NewCartHandler(&stubCartService{
		deleteCart: func(ctx context.Context, userID, gotCart primitive.ObjectID) error {
			return domain.Forbidden("service.cartService.DeleteCart", "you may only delete your own cart")
		},
	})

	r := authed(httptest.NewRequest(http.MethodDelete, "/api/v1/carts/"+cartID.Hex(), nil), primitive.NewObjectID())
	r.SetPathValue("id", cartID.Hex())
	w := httptest.NewRecorder()
	h.Delete(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "you may only delete your own cart")
}

func TestGetMyCartEnvelope(t *testing.T) {
	userID := primitive.NewObjectID()

	h := NewCartHandler(&stubCartService{
		getMyCart: func(ctx context.Context, gotUser primitive.ObjectID) (*service.CartView, error) {
			return &service.CartView{ID: primitive.NewObjectID(), TotalPrice: 99.5}, nil
		},
	})

	r := authed(httptest.NewRequest(http.MethodGet, "/api/v1/carts/me", nil), userID)
	w := httptest.NewRecorder()
	h.GetMyCart(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Contains(t, string(body.Data), `"totalPrice":99.5`)
}

func TestListCartsIncludesPagination(t *testing.T) {
	h := NewCartHandler(&stubCartService{
		listCarts: func(ctx context.Context, q domain.ListQuery) ([]service.CartView, *domain.Pagination, error) {
			p := domain.NewPagination(q.Normalize(), 42, 2)
			return []service.CartView{{}, {}}, &p, nil
		},
	})

	r := authed(httptest.NewRequest(http.MethodGet, "/api/v1/carts?page=2&limit=2", nil), primitive.NewObjectID())
	w := httptest.NewRecorder()
	h.List(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalItems":42`)
	assert.Contains(t, w.Body.String(), `"currentPage":2`)
}
