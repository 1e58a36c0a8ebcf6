package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asalem/souq/internal/domain"
)

type ProductStore struct {
	col *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{col: db.Collection("products")}
}

func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, p)
	return conflict(err, "product.create", "product with this title already exists")
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var p domain.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) FindByTitle(ctx context.Context, title string) (*domain.Product, error) {
	var p domain.Product
	err := s.col.FindOne(ctx, bson.M{"title": title}).Decode(&p)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return conflict(err, "product.update", "product with this title already exists")
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("product.update", "product", p.ID.Hex())
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("product.delete", "product", id.Hex())
	}
	return nil
}

func (s *ProductStore) UpdateRating(ctx context.Context, id primitive.ObjectID, average float64, quantity int) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"ratingsAverage":  average,
			"ratingsQuantity": quantity,
			"updatedAt":       time.Now().UTC(),
		},
	})
	return err
}

func (s *ProductStore) List(ctx context.Context, q domain.ListQuery, f domain.ProductFilter) ([]domain.Product, int64, error) {
	filter := productFilter(f)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.col.Find(ctx, filter, findOpts(q))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// productFilter translates the typed filter into a Mongo query document.
func productFilter(f domain.ProductFilter) bson.M {
	filter := bson.M{}

	if f.Keyword != "" {
		keyword := primitive.Regex{Pattern: f.Keyword, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": keyword},
			bson.M{"description": keyword},
		}
	}
	if !f.CategoryID.IsZero() {
		filter["category"] = f.CategoryID
	}

	addRange(filter, "price", f.PriceMin, f.PriceMax)
	addRange(filter, "sold", f.SoldMin, f.SoldMax)
	addRange(filter, "ratingsAverage", f.RatingMin, f.RatingMax)

	return filter
}

func addRange(filter bson.M, field string, min, max *float64) {
	if min == nil && max == nil {
		return
	}
	bounds := bson.M{}
	if min != nil {
		bounds["$gte"] = *min
	}
	if max != nil {
		bounds["$lte"] = *max
	}
	filter[field] = bounds
}
