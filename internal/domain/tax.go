package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tax is the storewide singleton holding flat tax and shipping charges.
type Tax struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TaxPrice      float64            `bson:"taxPrice" json:"taxPrice"`
	ShippingPrice float64            `bson:"shippingPrice" json:"shippingPrice"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TaxStore persists the single tax configuration document.
type TaxStore interface {
	// Find returns the configuration, or nil when none has been created yet.
	Find(ctx context.Context) (*Tax, error)
	Create(ctx context.Context, t *Tax) error
	Update(ctx context.Context, t *Tax) error
}
