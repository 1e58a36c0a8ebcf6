package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestProduct is a customer's request for a product the catalog lacks.
// TitleNeed is unique so the same need is not filed twice.
type RequestProduct struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TitleNeed string             `bson:"titleNeed" json:"titleNeed"`
	Details   string             `bson:"details,omitempty" json:"details,omitempty"`
	Quantity  int                `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type RequestProductStore interface {
	Create(ctx context.Context, rp *RequestProduct) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*RequestProduct, error)
	Update(ctx context.Context, rp *RequestProduct) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q ListQuery) ([]RequestProduct, int64, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, q ListQuery) ([]RequestProduct, int64, error)
}
