package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog document. Title is unique across the catalog.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`

	// Quantity is the currently available stock.
	Quantity int `bson:"quantity" json:"quantity"`

	// Sold counts completed purchases, used for sorting and filtering.
	Sold int `bson:"sold" json:"sold"`

	Price float64 `bson:"price" json:"price"`

	// PriceAfterDiscount is the discount amount subtracted from Price to
	// obtain the effective price. Zero means no discount.
	PriceAfterDiscount float64 `bson:"priceAfterDiscount,omitempty" json:"priceAfterDiscount,omitempty"`

	ImageCover string   `bson:"imageCover" json:"imageCover"`
	Images     []string `bson:"images,omitempty" json:"images,omitempty"`
	Colors     []string `bson:"color,omitempty" json:"color,omitempty"`

	Category    primitive.ObjectID `bson:"category" json:"category"`
	SubCategory primitive.ObjectID `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Brand       primitive.ObjectID `bson:"brand,omitempty" json:"brand,omitempty"`

	RatingsAverage  float64 `bson:"ratingsAverage" json:"ratingsAverage"`
	RatingsQuantity int     `bson:"ratingsQuantity" json:"ratingsQuantity"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EffectivePrice is the unit price used for all cart totals: the list price
// minus the discount amount, floored at zero.
func (p *Product) EffectivePrice() float64 {
	if p.PriceAfterDiscount <= 0 {
		return p.Price
	}
	eff := p.Price - p.PriceAfterDiscount
	if eff < 0 {
		return 0
	}
	return eff
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// ProductFilter narrows product listings. Nil range bounds are ignored.
type ProductFilter struct {
	// Keyword matches title or description, case-insensitively.
	Keyword string

	CategoryID primitive.ObjectID

	PriceMin  *float64
	PriceMax  *float64
	SoldMin   *float64
	SoldMax   *float64
	RatingMin *float64
	RatingMax *float64
}

// ProductStore persists product documents and doubles as the catalog lookup
// the cart service depends on.
type ProductStore interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	FindByTitle(ctx context.Context, title string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q ListQuery, f ProductFilter) ([]Product, int64, error)

	// UpdateRating replaces the denormalized rating rollup fields.
	UpdateRating(ctx context.Context, id primitive.ObjectID, average float64, quantity int) error
}
