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

type CouponStore struct {
	col *mongo.Collection
}

func NewCouponStore(db *mongo.Database) *CouponStore {
	return &CouponStore{col: db.Collection("coupons")}
}

func (s *CouponStore) Create(ctx context.Context, c *domain.Coupon) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, c)
	return conflict(err, "coupon.create", "coupon with this name already exists")
}

func (s *CouponStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error) {
	var c domain.Coupon
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CouponStore) FindByName(ctx context.Context, name string) (*domain.Coupon, error) {
	var c domain.Coupon
	err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&c)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CouponStore) Update(ctx context.Context, c *domain.Coupon) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return conflict(err, "coupon.update", "coupon with this name already exists")
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("coupon.update", "coupon", c.ID.Hex())
	}
	return nil
}

func (s *CouponStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("coupon.delete", "coupon", id.Hex())
	}
	return nil
}

func (s *CouponStore) List(ctx context.Context) ([]domain.Coupon, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	coupons := []domain.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}

	return coupons, nil
}
