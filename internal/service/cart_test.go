package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// ============================================================================
// In-memory fakes
// ============================================================================

// memCartStore implements domain.CartStore with a map guarded by a mutex so
// concurrent-mutation tests exercise the service's own serialization.
type memCartStore struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*domain.Cart
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[primitive.ObjectID]*domain.Cart)}
}

func (m *memCartStore) Create(ctx context.Context, c *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.carts {
		if existing.User == c.User {
			return domain.Conflict("cart.create", "a cart already exists for this user")
		}
	}
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.carts[c.ID] = cloneCart(c)
	return nil
}

func (m *memCartStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[id]; ok {
		return cloneCart(c), nil
	}
	return nil, nil
}

func (m *memCartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.carts {
		if c.User == userID {
			return cloneCart(c), nil
		}
	}
	return nil, nil
}

func (m *memCartStore) Replace(ctx context.Context, c *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[c.ID]; !ok {
		return domain.NotFound("cart.replace", "cart", c.ID.Hex())
	}
	c.UpdatedAt = time.Now()
	m.carts[c.ID] = cloneCart(c)
	return nil
}

func (m *memCartStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[id]; !ok {
		return domain.NotFound("cart.delete", "cart", id.Hex())
	}
	delete(m.carts, id)
	return nil
}

func (m *memCartStore) List(ctx context.Context, q domain.ListQuery) ([]domain.Cart, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Cart, 0, len(m.carts))
	for _, c := range m.carts {
		out = append(out, *cloneCart(c))
	}
	return out, int64(len(out)), nil
}

func cloneCart(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Items = append([]domain.CartItem(nil), c.Items...)
	cp.Coupons = append([]domain.AppliedCoupon(nil), c.Coupons...)
	return &cp
}

// memProductStore implements domain.ProductStore over a map.
type memProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*domain.Product
}

func newMemProductStore(products ...*domain.Product) *memProductStore {
	m := &memProductStore{products: make(map[primitive.ObjectID]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductStore) Create(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID] = p
	return nil
}

func (m *memProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memProductStore) FindByTitle(ctx context.Context, title string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Title == title {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProductStore) Update(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *memProductStore) List(ctx context.Context, q domain.ListQuery, f domain.ProductFilter) ([]domain.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *memProductStore) UpdateRating(ctx context.Context, id primitive.ObjectID, average float64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		p.RatingsAverage = average
		p.RatingsQuantity = quantity
	}
	return nil
}

// memCouponStore implements domain.CouponStore over a map keyed by name.
type memCouponStore struct {
	mu      sync.Mutex
	coupons map[string]*domain.Coupon
}

func newMemCouponStore(coupons ...*domain.Coupon) *memCouponStore {
	m := &memCouponStore{coupons: make(map[string]*domain.Coupon)}
	for _, c := range coupons {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		m.coupons[c.Name] = c
	}
	return m
}

func (m *memCouponStore) Create(ctx context.Context, c *domain.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.coupons[c.Name]; ok {
		return domain.Conflict("coupon.create", "coupon with this name already exists")
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.coupons[c.Name] = c
	return nil
}

func (m *memCouponStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.coupons {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCouponStore) FindByName(ctx context.Context, name string) (*domain.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.coupons[name]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memCouponStore) Update(ctx context.Context, c *domain.Coupon) error { return nil }

func (m *memCouponStore) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (m *memCouponStore) List(ctx context.Context) ([]domain.Coupon, error) { return nil, nil }

// memUserStore implements the subset of domain.UserStore the cart service
// touches (FindByID for owner expansion).
type memUserStore struct {
	users map[primitive.ObjectID]*domain.User
}

func newMemUserStore(users ...*domain.User) *memUserStore {
	m := &memUserStore{users: make(map[primitive.ObjectID]*domain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUserStore) Create(ctx context.Context, u *domain.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUserStore) FindByEmail(ctx context.Context, emailAddr string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == emailAddr {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *memUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.users, id)
	return nil
}

func (m *memUserStore) List(ctx context.Context, q domain.ListQuery, f domain.UserFilter) ([]domain.User, int64, error) {
	return nil, 0, nil
}

// ============================================================================
// Fixtures
// ============================================================================

func makeProduct(price, discount float64, stock int) *domain.Product {
	return &domain.Product{
		ID:                 primitive.NewObjectID(),
		Title:              "test product",
		Price:              price,
		PriceAfterDiscount: discount,
		Quantity:           stock,
	}
}

func makeCartService(products ...*domain.Product) (CartService, *memCartStore, *memCouponStore) {
	carts := newMemCartStore()
	coupons := newMemCouponStore()
	users := newMemUserStore()
	svc := NewCartService(carts, newMemProductStore(products...), coupons, users)
	return svc, carts, coupons
}

// checkTotalInvariant recomputes totalPrice from scratch and compares it to
// the maintained running total.
func checkTotalInvariant(t *testing.T, cart *domain.Cart, products *memProductStore) {
	t.Helper()
	var want float64
	for _, item := range cart.Items {
		p, err := products.FindByID(context.Background(), item.ProductID)
		require.NoError(t, err)
		require.NotNil(t, p)
		want += p.EffectivePrice() * float64(item.Quantity)
	}
	assert.InDelta(t, want, cart.TotalPrice, 0.001)
}

// ============================================================================
// Tests
// ============================================================================

func TestAddItemCreatesCartLazily(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc, _, _ := makeCartService(product)
	userID := primitive.NewObjectID()

	res, err := svc.AddItem(context.Background(), userID, product.ID)
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, msgProductAdded, res.Message)
	require.Len(t, res.Cart.Items, 1)
	assert.Equal(t, 1, res.Cart.Items[0].Quantity)
	assert.Equal(t, 100.0, res.Cart.TotalPrice)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc, _, _ := makeCartService(product)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID)
	require.NoError(t, err)

	res, err := svc.AddItem(context.Background(), userID, product.ID)
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.Equal(t, msgQuantityIncreased, res.Message)
	require.Len(t, res.Cart.Items, 1, "adding the same product twice must not create a second line")
	assert.Equal(t, 2, res.Cart.Items[0].Quantity)
	assert.Equal(t, 200.0, res.Cart.TotalPrice)
}

func TestAddItemUsesEffectivePrice(t *testing.T) {
	// Price 200 with a discount amount of 50 gives an effective unit
	// price of 150.
	product := makeProduct(200, 50, 10)
	svc, _, _ := makeCartService(product)

	res, err := svc.AddItem(context.Background(), primitive.NewObjectID(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, res.Cart.TotalPrice)
}

func TestAddItemProductNotFound(t *testing.T) {
	svc, _, _ := makeCartService()

	_, err := svc.AddItem(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestAddItemOutOfStock(t *testing.T) {
	product := makeProduct(100, 0, 0)
	svc, _, _ := makeCartService(product)

	_, err := svc.AddItem(context.Background(), primitive.NewObjectID(), product.ID)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestUpdateItemQuantityBoundedByStock(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc, _, _ := makeCartService(product)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	// Exactly the available stock succeeds.
	five := 5
	res, err := svc.UpdateItem(ctx, userID, product.ID, UpdateItemInput{Quantity: &five})
	require.NoError(t, err)
	assert.Equal(t, 500.0, res.Cart.TotalPrice)

	// One past the available stock fails and leaves the cart unchanged.
	six := 6
	_, err = svc.UpdateItem(ctx, userID, product.ID, UpdateItemInput{Quantity: &six})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	view, err := svc.GetMyCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, view.TotalPrice)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestUpdateItemDegradesToAdd(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc, _, _ := makeCartService(product)
	userID := primitive.NewObjectID()

	three := 3
	res, err := svc.UpdateItem(context.Background(), userID, product.ID, UpdateItemInput{Quantity: &three})
	require.NoError(t, err)

	// No cart existed, so the update behaves like a first add.
	assert.True(t, res.Created)
	require.Len(t, res.Cart.Items, 1)
	assert.Equal(t, 1, res.Cart.Items[0].Quantity)
	assert.Equal(t, 100.0, res.Cart.TotalPrice)
}

func TestUpdateItemRepricesFromCurrentProduct(t *testing.T) {
	product := makeProduct(100, 0, 10)
	products := newMemProductStore(product)
	carts := newMemCartStore()
	svc := NewCartService(carts, products, newMemCouponStore(), newMemUserStore())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	// Price changes between add and update; the new line total must use
	// the current price.
	product.Price = 80
	require.NoError(t, products.Update(ctx, product))

	two := 2
	res, err := svc.UpdateItem(ctx, userID, product.ID, UpdateItemInput{Quantity: &two})
	require.NoError(t, err)
	// 100 (stale running total) - 80*1 + 80*2 = 180
	assert.Equal(t, 180.0, res.Cart.TotalPrice)
}

func TestUpdateItemColorOnly(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc, _, _ := makeCartService(product)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	red := "red"
	res, err := svc.UpdateItem(ctx, userID, product.ID, UpdateItemInput{Color: &red})
	require.NoError(t, err)
	assert.Equal(t, "red", res.Cart.Items[0].Color)
	assert.Equal(t, 1, res.Cart.Items[0].Quantity)
	assert.Equal(t, 100.0, res.Cart.TotalPrice)
}

func TestRemoveItemCleansUp(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc, _, _ := makeCartService(product)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, userID, product.ID)
	require.NoError(t, err)

	// The cart survives, empty and zeroed.
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestRemoveItemNotInCart(t *testing.T) {
	product := makeProduct(100, 0, 5)
	other := makeProduct(50, 0, 5)
	svc, _, _ := makeCartService(product, other)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, userID, other.ID)
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestFullCartScenario(t *testing.T) {
	// Product P: price 100, no discount, stock 5.
	product := makeProduct(100, 0, 5)
	products := newMemProductStore(product)
	carts := newMemCartStore()
	svc := NewCartService(carts, products, newMemCouponStore(), newMemUserStore())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	res, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Cart.TotalPrice)
	checkTotalInvariant(t, res.Cart, products)

	res, err = svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.Cart.TotalPrice)
	assert.Equal(t, 2, res.Cart.Items[0].Quantity)
	checkTotalInvariant(t, res.Cart, products)

	five := 5
	res, err = svc.UpdateItem(ctx, userID, product.ID, UpdateItemInput{Quantity: &five})
	require.NoError(t, err)
	assert.Equal(t, 500.0, res.Cart.TotalPrice)
	checkTotalInvariant(t, res.Cart, products)

	six := 6
	_, err = svc.UpdateItem(ctx, userID, product.ID, UpdateItemInput{Quantity: &six})
	require.Error(t, err)

	view, err := svc.GetMyCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, view.TotalPrice)

	cart, err := svc.RemoveItem(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestApplyCoupon(t *testing.T) {
	product := makeProduct(100, 0, 10)
	coupon := &domain.Coupon{
		Name:       "SAVE10",
		Discount:   10,
		ExpiryDate: time.Now().Add(24 * time.Hour),
	}
	carts := newMemCartStore()
	svc := NewCartService(carts, newMemProductStore(product), newMemCouponStore(coupon), newMemUserStore())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	cart, err := svc.ApplyCoupon(ctx, userID, "SAVE10")
	require.NoError(t, err)
	require.Len(t, cart.Coupons, 1)
	assert.Equal(t, "SAVE10", cart.Coupons[0].Name)
	assert.Equal(t, 90.0, cart.TotalPriceAfterDiscount)

	// Applying the same coupon again is rejected.
	_, err = svc.ApplyCoupon(ctx, userID, "SAVE10")
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestApplyCouponExpired(t *testing.T) {
	product := makeProduct(100, 0, 10)
	coupon := &domain.Coupon{
		Name:       "OLD",
		Discount:   10,
		ExpiryDate: time.Now().Add(-time.Hour),
	}
	svc := NewCartService(newMemCartStore(), newMemProductStore(product), newMemCouponStore(coupon), newMemUserStore())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	_, err = svc.ApplyCoupon(ctx, userID, "OLD")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestApplyCouponUnknownName(t *testing.T) {
	product := makeProduct(100, 0, 10)
	svc, _, _ := makeCartService(product)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	_, err = svc.ApplyCoupon(ctx, userID, "NOPE")
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCouponsStackSequentially(t *testing.T) {
	product := makeProduct(100, 0, 10)
	first := &domain.Coupon{Name: "TEN", Discount: 10, ExpiryDate: time.Now().Add(time.Hour)}
	second := &domain.Coupon{Name: "TWENTY", Discount: 20, ExpiryDate: time.Now().Add(time.Hour)}
	svc := NewCartService(newMemCartStore(), newMemProductStore(product), newMemCouponStore(first, second), newMemUserStore())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	_, err = svc.ApplyCoupon(ctx, userID, "TEN")
	require.NoError(t, err)
	cart, err := svc.ApplyCoupon(ctx, userID, "TWENTY")
	require.NoError(t, err)

	// 100 -> 90 after TEN, -> 72 after TWENTY.
	assert.Equal(t, 72.0, cart.TotalPriceAfterDiscount)
}

func TestDiscountTracksLaterMutations(t *testing.T) {
	product := makeProduct(100, 0, 10)
	coupon := &domain.Coupon{Name: "TEN", Discount: 10, ExpiryDate: time.Now().Add(time.Hour)}
	svc := NewCartService(newMemCartStore(), newMemProductStore(product), newMemCouponStore(coupon), newMemUserStore())
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)
	_, err = svc.ApplyCoupon(ctx, userID, "TEN")
	require.NoError(t, err)

	// Adding a second unit doubles the base total; the discounted total
	// must follow.
	res, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.Cart.TotalPrice)
	assert.Equal(t, 180.0, res.Cart.TotalPriceAfterDiscount)
}

func TestDeleteCartOwnership(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc, carts, _ := makeCartService(product)
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	ctx := context.Background()

	res, err := svc.AddItem(ctx, owner, product.ID)
	require.NoError(t, err)

	err = svc.DeleteCart(ctx, intruder, res.Cart.ID)
	require.Error(t, err)
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))

	// The target cart is untouched.
	stored, err := carts.FindByID(ctx, res.Cart.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 100.0, stored.TotalPrice)

	require.NoError(t, svc.DeleteCart(ctx, owner, res.Cart.ID))
	stored, err = carts.FindByID(ctx, res.Cart.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestGetMyCartExpandsProducts(t *testing.T) {
	product := makeProduct(200, 50, 10)
	product.ImageCover = "cover.jpg"
	svc, _, _ := makeCartService(product)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, product.ID)
	require.NoError(t, err)

	view, err := svc.GetMyCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "test product", view.Items[0].Title)
	assert.Equal(t, 200.0, view.Items[0].Price)
	assert.Equal(t, 50.0, view.Items[0].PriceAfterDiscount)
	assert.Equal(t, "cover.jpg", view.Items[0].ImageCover)
}

func TestGetMyCartAbsent(t *testing.T) {
	svc, _, _ := makeCartService()

	_, err := svc.GetMyCart(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestConcurrentAddsSerialize(t *testing.T) {
	const adds = 50
	product := makeProduct(10, 0, adds)
	svc, _, _ := makeCartService(product)
	userID := primitive.NewObjectID()

	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(context.Background(), userID, product.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := svc.GetMyCart(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1, "concurrent first adds must not create duplicate lines")
	assert.Equal(t, adds, view.Items[0].Quantity)
	assert.Equal(t, float64(adds)*10, view.TotalPrice)
}
