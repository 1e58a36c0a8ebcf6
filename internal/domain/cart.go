package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Product not found in cart"}
	ErrOutOfStock       = &Error{Code: EINVALID, Message: "This product is out of stock"}
)

// CartItem is one line within a cart: a product reference, a quantity and an
// optional color variant. Items are embedded, never addressed independently.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Color     string             `bson:"color" json:"color"`
}

// AppliedCoupon records one coupon applied to a cart.
type AppliedCoupon struct {
	Name     string             `bson:"name" json:"name"`
	CouponID primitive.ObjectID `bson:"couponId" json:"couponId"`
}

// Cart is the single per-user aggregate grouping all line items and derived
// totals. User is the natural unique key; the store enforces one cart per user.
type Cart struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`

	// Items holds at most one entry per distinct product.
	Items []CartItem `bson:"cartItems" json:"cartItems"`

	// TotalPrice is maintained incrementally: the sum over Items of
	// effective unit price times quantity. Every mutation that changes
	// quantity or composition adjusts it in the same write.
	TotalPrice float64 `bson:"totalPrice" json:"totalPrice"`

	// TotalPriceAfterDiscount is TotalPrice with all applied coupon
	// percentages taken off. Zero when no coupon is applied.
	TotalPriceAfterDiscount float64 `bson:"totalPriceAfterDiscount,omitempty" json:"totalPriceAfterDiscount,omitempty"`

	Coupons []AppliedCoupon    `bson:"coupons,omitempty" json:"coupons,omitempty"`
	User    primitive.ObjectID `bson:"user" json:"user"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ItemIndex returns the position of the line holding productID, or -1.
func (c *Cart) ItemIndex(productID primitive.ObjectID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// HasCoupon reports whether a coupon with the given name is already applied.
func (c *Cart) HasCoupon(name string) bool {
	for i := range c.Coupons {
		if c.Coupons[i].Name == name {
			return true
		}
	}
	return false
}

// CartStore persists cart aggregates as whole documents: a mutation is a
// single full-document replace, so no partial state is ever observable.
type CartStore interface {
	Create(ctx context.Context, c *Cart) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Cart, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*Cart, error)

	// Replace writes the whole document back under its _id.
	Replace(ctx context.Context, c *Cart) error

	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q ListQuery) ([]Cart, int64, error)
}
