package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asalem/souq/internal/domain"
)

// CartStore persists cart aggregates. Every mutation goes through a
// full-document write so a cart is never observable in a half-updated state.
type CartStore struct {
	col *mongo.Collection
}

func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{col: db.Collection("carts")}
}

func (s *CartStore) Create(ctx context.Context, c *domain.Cart) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, c)
	return conflict(err, "cart.create", "a cart already exists for this user")
}

func (s *CartStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Cart, error) {
	var c domain.Cart
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	var c domain.Cart
	err := s.col.FindOne(ctx, bson.M{"user": userID}).Decode(&c)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CartStore) Replace(ctx context.Context, c *domain.Cart) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}

func (s *CartStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}

func (s *CartStore) List(ctx context.Context, q domain.ListQuery) ([]domain.Cart, int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.col.Find(ctx, bson.M{}, findOpts(q))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	carts := []domain.Cart{}
	if err := cursor.All(ctx, &carts); err != nil {
		return nil, 0, err
	}

	return carts, total, nil
}
