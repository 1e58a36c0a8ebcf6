package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asalem/souq/internal/domain"
)

type BrandStore struct {
	col *mongo.Collection
}

func NewBrandStore(db *mongo.Database) *BrandStore {
	return &BrandStore{col: db.Collection("brands")}
}

func (s *BrandStore) Create(ctx context.Context, b *domain.Brand) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, b)
	return conflict(err, "brand.create", "brand with this name already exists")
}

func (s *BrandStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Brand, error) {
	var b domain.Brand
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BrandStore) Update(ctx context.Context, b *domain.Brand) error {
	b.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return conflict(err, "brand.update", "brand with this name already exists")
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("brand.update", "brand", b.ID.Hex())
	}
	return nil
}

func (s *BrandStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("brand.delete", "brand", id.Hex())
	}
	return nil
}

func (s *BrandStore) List(ctx context.Context) ([]domain.Brand, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	brands := []domain.Brand{}
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}

	return brands, nil
}
