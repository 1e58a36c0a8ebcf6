package service

import (
	"context"
	"math"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// CartService provides business logic for shopping cart operations.
// Mutations against the same user's cart are serialized by an in-process
// per-user mutex, and the store keeps a unique index on the owning user,
// so concurrent first-add requests cannot produce two carts.
type CartService interface {
	// AddItem puts one unit of a product into the user's cart, creating the
	// cart lazily on first use. Adding a product already in the cart
	// increments its quantity instead of appending a second line.
	AddItem(ctx context.Context, userID, productID primitive.ObjectID) (*CartMutation, error)

	// UpdateItem sets a new quantity and/or color for a product line. When
	// the product is not in the cart yet the call degrades to AddItem.
	UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, in UpdateItemInput) (*CartMutation, error)

	// RemoveItem deletes a product line and subtracts its line total.
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*domain.Cart, error)

	// ApplyCoupon validates a coupon by name and records it on the cart,
	// recomputing the discounted total.
	ApplyCoupon(ctx context.Context, userID primitive.ObjectID, couponName string) (*domain.Cart, error)

	// GetMyCart returns the authenticated user's cart with product lines
	// expanded for display.
	GetMyCart(ctx context.Context, userID primitive.ObjectID) (*CartView, error)

	// ListCarts returns all carts, paginated, newest first.
	ListCarts(ctx context.Context, q domain.ListQuery) ([]CartView, *domain.Pagination, error)

	// DeleteCart removes a cart after an ownership check.
	DeleteCart(ctx context.Context, userID, cartID primitive.ObjectID) error
}

// CartMutation is the outcome of an add or update, carrying the persisted
// cart plus what happened to it so the handler can pick status and message.
type CartMutation struct {
	Cart    *domain.Cart
	Created bool
	Message string
}

// UpdateItemInput carries the optional fields of an item update. Nil means
// "leave unchanged".
type UpdateItemInput struct {
	Quantity *int
	Color    *string
}

// CartLine is a cart item joined with its current product record.
type CartLine struct {
	ProductID          primitive.ObjectID `json:"productId"`
	Title              string             `json:"title"`
	Price              float64            `json:"price"`
	PriceAfterDiscount float64            `json:"priceAfterDiscount,omitempty"`
	ImageCover         string             `json:"imageCover,omitempty"`
	Images             []string           `json:"images,omitempty"`
	Quantity           int                `json:"quantity"`
	Color              string             `json:"color,omitempty"`
}

// CartOwner is the expanded owning-user summary on an admin cart listing.
type CartOwner struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// CartView is a cart shaped for display: items expanded with product
// details and, on admin listings, the owner expanded too.
type CartView struct {
	ID                      primitive.ObjectID     `json:"_id"`
	Items                   []CartLine             `json:"cartItems"`
	TotalPrice              float64                `json:"totalPrice"`
	TotalPriceAfterDiscount float64                `json:"totalPriceAfterDiscount,omitempty"`
	Coupons                 []domain.AppliedCoupon `json:"coupons,omitempty"`
	User                    *CartOwner             `json:"user,omitempty"`
	CreatedAt               time.Time              `json:"createdAt"`
	UpdatedAt               time.Time              `json:"updatedAt"`
}

const (
	msgProductAdded      = "new product added to cart"
	msgQuantityIncreased = "product quantity increased in cart"
)

// userLocks hands out one mutex per user id. Entries are never evicted;
// the map is bounded by the number of distinct users seen by this process.
type userLocks struct {
	mu    sync.Mutex
	locks map[primitive.ObjectID]*sync.Mutex
}

func (l *userLocks) forUser(id primitive.ObjectID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

type cartService struct {
	carts    domain.CartStore
	products domain.ProductStore
	coupons  domain.CouponStore
	users    domain.UserStore
	locks    userLocks
}

// NewCartService creates a new CartService instance.
func NewCartService(carts domain.CartStore, products domain.ProductStore, coupons domain.CouponStore, users domain.UserStore) CartService {
	return &cartService{
		carts:    carts,
		products: products,
		coupons:  coupons,
		users:    users,
		locks:    userLocks{locks: make(map[primitive.ObjectID]*sync.Mutex)},
	}
}

func (s *cartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID) (*CartMutation, error) {
	const op = "cart.add_item"

	mu := s.locks.forUser(userID)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product")
	}
	if product == nil {
		return nil, domain.NotFound(op, "product", productID.Hex())
	}
	if !product.InStock() {
		return nil, domain.Invalid(op, "product is out of stock")
	}

	unit := product.EffectivePrice()

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart")
	}

	if cart == nil {
		cart = &domain.Cart{
			User:       userID,
			Items:      []domain.CartItem{{ProductID: productID, Quantity: 1}},
			TotalPrice: round2(unit),
		}
		if err := s.carts.Create(ctx, cart); err != nil {
			return nil, err
		}
		return &CartMutation{Cart: cart, Created: true, Message: msgProductAdded}, nil
	}

	msg := msgProductAdded
	created := true
	if i := cart.ItemIndex(productID); i >= 0 {
		cart.Items[i].Quantity++
		msg = msgQuantityIncreased
		created = false
	} else {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: productID, Quantity: 1})
	}
	cart.TotalPrice = round2(cart.TotalPrice + unit)

	if err := s.refreshDiscount(ctx, cart); err != nil {
		return nil, domain.Internal(err, op, "failed to recompute discount")
	}
	if err := s.carts.Replace(ctx, cart); err != nil {
		return nil, err
	}
	return &CartMutation{Cart: cart, Created: created, Message: msg}, nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, in UpdateItemInput) (*CartMutation, error) {
	const op = "cart.update_item"

	mu := s.locks.forUser(userID)
	mu.Lock()

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		mu.Unlock()
		return nil, domain.Internal(err, op, "failed to load cart")
	}

	idx := -1
	if cart != nil {
		idx = cart.ItemIndex(productID)
	}
	if cart == nil || idx < 0 {
		// Update degrades to insert when the line does not exist yet.
		mu.Unlock()
		return s.AddItem(ctx, userID, productID)
	}
	defer mu.Unlock()

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product")
	}
	if product == nil {
		return nil, domain.NotFound(op, "product", productID.Hex())
	}

	item := &cart.Items[idx]

	if in.Quantity != nil {
		quantity := *in.Quantity
		if quantity < 1 {
			return nil, domain.Invalid(op, "quantity must be at least 1")
		}
		if quantity > product.Quantity {
			return nil, domain.Invalid(op, "requested quantity exceeds available stock")
		}

		// Price is taken from the product record as it is now, not from
		// whatever it was when the item was first added.
		unit := product.EffectivePrice()
		cart.TotalPrice = round2(cart.TotalPrice - unit*float64(item.Quantity) + unit*float64(quantity))
		item.Quantity = quantity
	}

	if in.Color != nil && *in.Color != "" {
		item.Color = *in.Color
	}

	if err := s.refreshDiscount(ctx, cart); err != nil {
		return nil, domain.Internal(err, op, "failed to recompute discount")
	}
	if err := s.carts.Replace(ctx, cart); err != nil {
		return nil, err
	}
	return &CartMutation{Cart: cart, Message: "cart item updated"}, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*domain.Cart, error) {
	const op = "cart.remove_item"

	mu := s.locks.forUser(userID)
	mu.Lock()
	defer mu.Unlock()

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart")
	}
	if cart == nil {
		return nil, domain.NotFound(op, "cart", userID.Hex())
	}

	idx := cart.ItemIndex(productID)
	if idx < 0 {
		return nil, domain.NotFound(op, "cart item", productID.Hex())
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product")
	}

	if product != nil {
		cart.TotalPrice = round2(cart.TotalPrice - product.EffectivePrice()*float64(cart.Items[idx].Quantity))
		if cart.TotalPrice < 0 {
			cart.TotalPrice = 0
		}
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	if len(cart.Items) == 0 {
		cart.TotalPrice = 0
	}

	if err := s.refreshDiscount(ctx, cart); err != nil {
		return nil, domain.Internal(err, op, "failed to recompute discount")
	}
	if err := s.carts.Replace(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) ApplyCoupon(ctx context.Context, userID primitive.ObjectID, couponName string) (*domain.Cart, error) {
	const op = "cart.apply_coupon"

	mu := s.locks.forUser(userID)
	mu.Lock()
	defer mu.Unlock()

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart")
	}
	if cart == nil {
		return nil, domain.NotFound(op, "cart", userID.Hex())
	}

	coupon, err := s.coupons.FindByName(ctx, couponName)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load coupon")
	}
	if coupon == nil {
		return nil, domain.NotFound(op, "coupon", couponName)
	}
	if coupon.Expired(time.Now()) {
		return nil, domain.Invalid(op, "coupon has expired")
	}
	if cart.HasCoupon(couponName) {
		return nil, domain.Conflict(op, "coupon already applied to this cart")
	}

	cart.Coupons = append(cart.Coupons, domain.AppliedCoupon{Name: coupon.Name, CouponID: coupon.ID})

	// Stacked coupons discount sequentially: each percentage applies to the
	// total left by the previous one.
	if err := s.refreshDiscount(ctx, cart); err != nil {
		return nil, domain.Internal(err, op, "failed to recompute discount")
	}
	if err := s.carts.Replace(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// refreshDiscount recomputes totalPriceAfterDiscount from the applied
// coupons so the discounted total tracks the running total across later
// mutations. Coupons deleted since application are skipped; expiry is only
// checked at application time.
func (s *cartService) refreshDiscount(ctx context.Context, cart *domain.Cart) error {
	if len(cart.Coupons) == 0 {
		cart.TotalPriceAfterDiscount = 0
		return nil
	}

	total := cart.TotalPrice
	for _, applied := range cart.Coupons {
		coupon, err := s.coupons.FindByName(ctx, applied.Name)
		if err != nil {
			return err
		}
		if coupon == nil {
			continue
		}
		total -= total * coupon.Discount / 100
	}
	cart.TotalPriceAfterDiscount = round2(total)
	return nil
}

func (s *cartService) GetMyCart(ctx context.Context, userID primitive.ObjectID) (*CartView, error) {
	const op = "cart.get_my_cart"

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart")
	}
	if cart == nil {
		return nil, domain.NotFound(op, "cart", userID.Hex())
	}

	view, err := s.expand(ctx, cart, false)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to expand cart")
	}
	return view, nil
}

func (s *cartService) ListCarts(ctx context.Context, q domain.ListQuery) ([]CartView, *domain.Pagination, error) {
	const op = "cart.list"

	q = q.Normalize()
	carts, total, err := s.carts.List(ctx, q)
	if err != nil {
		return nil, nil, domain.Internal(err, op, "failed to list carts")
	}

	views := make([]CartView, 0, len(carts))
	for i := range carts {
		view, err := s.expand(ctx, &carts[i], true)
		if err != nil {
			return nil, nil, domain.Internal(err, op, "failed to expand cart")
		}
		views = append(views, *view)
	}

	p := domain.NewPagination(q, total, len(views))
	return views, &p, nil
}

func (s *cartService) DeleteCart(ctx context.Context, userID, cartID primitive.ObjectID) error {
	const op = "cart.delete"

	mu := s.locks.forUser(userID)
	mu.Lock()
	defer mu.Unlock()

	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return domain.Internal(err, op, "failed to load cart")
	}
	if cart == nil {
		return domain.NotFound(op, "cart", cartID.Hex())
	}
	if cart.User != userID {
		return domain.Forbidden(op, "you may only delete your own cart")
	}

	return s.carts.Delete(ctx, cartID)
}

// expand joins cart items with their current product records. Items whose
// product has been deleted since they were added are shown with only the
// reference. withOwner additionally expands the owning user.
func (s *cartService) expand(ctx context.Context, cart *domain.Cart, withOwner bool) (*CartView, error) {
	view := &CartView{
		ID:                      cart.ID,
		Items:                   make([]CartLine, 0, len(cart.Items)),
		TotalPrice:              cart.TotalPrice,
		TotalPriceAfterDiscount: cart.TotalPriceAfterDiscount,
		Coupons:                 cart.Coupons,
		CreatedAt:               cart.CreatedAt,
		UpdatedAt:               cart.UpdatedAt,
	}

	for _, item := range cart.Items {
		line := CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Color:     item.Color,
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			line.Title = product.Title
			line.Price = product.Price
			line.PriceAfterDiscount = product.PriceAfterDiscount
			line.ImageCover = product.ImageCover
			line.Images = product.Images
		}
		view.Items = append(view.Items, line)
	}

	if withOwner {
		owner, err := s.users.FindByID(ctx, cart.User)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			view.User = &CartOwner{ID: owner.ID, Name: owner.Name, Email: owner.Email}
		}
	}

	return view, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
