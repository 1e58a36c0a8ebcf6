package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products at the top level of the catalog tree.
// Names are stored lowercased and are unique.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SubCategory refines a Category. The parent category must exist.
type SubCategory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Category  primitive.ObjectID `bson:"category" json:"category"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Brand is a name-unique manufacturer label.
type Brand struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Supplier is a name-unique sourcing partner.
type Supplier struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Website   string             `bson:"website,omitempty" json:"website,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CategoryStore interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, name string) ([]Category, error)
}

type SubCategoryStore interface {
	Create(ctx context.Context, sc *SubCategory) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*SubCategory, error)
	FindByName(ctx context.Context, name string) (*SubCategory, error)
	Update(ctx context.Context, sc *SubCategory) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]SubCategory, error)
}

type BrandStore interface {
	Create(ctx context.Context, b *Brand) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Brand, error)
	Update(ctx context.Context, b *Brand) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]Brand, error)
}

type SupplierStore interface {
	Create(ctx context.Context, s *Supplier) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]Supplier, error)
}
