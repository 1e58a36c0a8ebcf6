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

type CategoryStore struct {
	col *mongo.Collection
}

func NewCategoryStore(db *mongo.Database) *CategoryStore {
	return &CategoryStore{col: db.Collection("categories")}
}

func (s *CategoryStore) Create(ctx context.Context, c *domain.Category) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, c)
	return conflict(err, "category.create", "category already exists")
}

func (s *CategoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var c domain.Category
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryStore) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&c)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryStore) Update(ctx context.Context, c *domain.Category) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return conflict(err, "category.update", "this category name already exists")
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("category.update", "category", c.ID.Hex())
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("category.delete", "category", id.Hex())
	}
	return nil
}

// List returns categories, optionally narrowed by a case-insensitive
// name match.
func (s *CategoryStore) List(ctx context.Context, name string) ([]domain.Category, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = primitive.Regex{Pattern: name, Options: "i"}
	}

	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []domain.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}
