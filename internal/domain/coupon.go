package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon is a name-unique percentage discount with an expiry date.
type Coupon struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	ExpiryDate time.Time          `bson:"expiryDate" json:"expiryDate"`

	// Discount is a percentage, e.g. 10 means 10% off.
	Discount float64 `bson:"discount" json:"discount"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Expired reports whether the coupon can no longer be applied.
func (c *Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpiryDate)
}

type CouponStore interface {
	Create(ctx context.Context, c *Coupon) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Coupon, error)
	FindByName(ctx context.Context, name string) (*Coupon, error)
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]Coupon, error)
}
