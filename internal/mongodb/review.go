package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asalem/souq/internal/domain"
)

type ReviewStore struct {
	col *mongo.Collection
}

func NewReviewStore(db *mongo.Database) *ReviewStore {
	return &ReviewStore{col: db.Collection("reviews")}
}

func (s *ReviewStore) Create(ctx context.Context, r *domain.Review) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, r)
	return conflict(err, "review.create", "you have already reviewed this product")
}

func (s *ReviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	var r domain.Review
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReviewStore) FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*domain.Review, error) {
	var r domain.Review
	err := s.col.FindOne(ctx, bson.M{"user": userID, "product": productID}).Decode(&r)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReviewStore) Update(ctx context.Context, r *domain.Review) error {
	r.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": r.ID}, r)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("review.update", "review", r.ID.Hex())
	}
	return nil
}

func (s *ReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("review.delete", "review", id.Hex())
	}
	return nil
}

func (s *ReviewStore) List(ctx context.Context, q domain.ListQuery) ([]domain.Review, int64, error) {
	return s.list(ctx, bson.M{}, q)
}

func (s *ReviewStore) ListByProduct(ctx context.Context, productID primitive.ObjectID, q domain.ListQuery) ([]domain.Review, int64, error) {
	return s.list(ctx, bson.M{"product": productID}, q)
}

func (s *ReviewStore) ListByUser(ctx context.Context, userID primitive.ObjectID, q domain.ListQuery) ([]domain.Review, int64, error) {
	return s.list(ctx, bson.M{"user": userID}, q)
}

func (s *ReviewStore) list(ctx context.Context, filter bson.M, q domain.ListQuery) ([]domain.Review, int64, error) {
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.col.Find(ctx, filter, findOpts(q))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (s *ReviewStore) AllForProduct(ctx context.Context, productID primitive.ObjectID) ([]domain.Review, error) {
	cursor, err := s.col.Find(ctx, bson.M{"product": productID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}
