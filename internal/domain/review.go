package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one user's rating of one product. The store enforces a unique
// {product, user} pair.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ReviewText string             `bson:"reviewText,omitempty" json:"reviewText,omitempty"`
	Rating     int                `bson:"rating" json:"rating"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	Product    primitive.ObjectID `bson:"product" json:"product"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ReviewStore interface {
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q ListQuery) ([]Review, int64, error)
	ListByProduct(ctx context.Context, productID primitive.ObjectID, q ListQuery) ([]Review, int64, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, q ListQuery) ([]Review, int64, error)

	// AllForProduct returns every review of a product, for rating rollups.
	AllForProduct(ctx context.Context, productID primitive.ObjectID) ([]Review, error)
}
