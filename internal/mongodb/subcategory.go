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

type SubCategoryStore struct {
	col *mongo.Collection
}

func NewSubCategoryStore(db *mongo.Database) *SubCategoryStore {
	return &SubCategoryStore{col: db.Collection("subcategories")}
}

func (s *SubCategoryStore) Create(ctx context.Context, sc *domain.SubCategory) error {
	now := time.Now().UTC()
	sc.CreatedAt = now
	sc.UpdatedAt = now
	if sc.ID.IsZero() {
		sc.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, sc)
	return conflict(err, "subcategory.create", "sub-category with this name already exists")
}

func (s *SubCategoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.SubCategory, error) {
	var sc domain.SubCategory
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sc)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *SubCategoryStore) FindByName(ctx context.Context, name string) (*domain.SubCategory, error) {
	var sc domain.SubCategory
	err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&sc)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *SubCategoryStore) Update(ctx context.Context, sc *domain.SubCategory) error {
	sc.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": sc.ID}, sc)
	if err != nil {
		return conflict(err, "subcategory.update", "sub-category with this name already exists")
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("subcategory.update", "sub-category", sc.ID.Hex())
	}
	return nil
}

func (s *SubCategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("subcategory.delete", "sub-category", id.Hex())
	}
	return nil
}

func (s *SubCategoryStore) List(ctx context.Context) ([]domain.SubCategory, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subcategories := []domain.SubCategory{}
	if err := cursor.All(ctx, &subcategories); err != nil {
		return nil, err
	}

	return subcategories, nil
}
