package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asalem/souq/internal/domain"
)

type RequestProductStore struct {
	col *mongo.Collection
}

func NewRequestProductStore(db *mongo.Database) *RequestProductStore {
	return &RequestProductStore{col: db.Collection("requestproducts")}
}

func (s *RequestProductStore) Create(ctx context.Context, rp *domain.RequestProduct) error {
	now := time.Now().UTC()
	rp.CreatedAt = now
	rp.UpdatedAt = now
	if rp.ID.IsZero() {
		rp.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, rp)
	return conflict(err, "requestproduct.create", "this product has already been requested")
}

func (s *RequestProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.RequestProduct, error) {
	var rp domain.RequestProduct
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rp)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *RequestProductStore) Update(ctx context.Context, rp *domain.RequestProduct) error {
	rp.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": rp.ID}, rp)
	if err != nil {
		return conflict(err, "requestproduct.update", "this product has already been requested")
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("requestproduct.update", "request", rp.ID.Hex())
	}
	return nil
}

func (s *RequestProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("requestproduct.delete", "request", id.Hex())
	}
	return nil
}

func (s *RequestProductStore) List(ctx context.Context, q domain.ListQuery) ([]domain.RequestProduct, int64, error) {
	return s.list(ctx, bson.M{}, q)
}

func (s *RequestProductStore) ListByUser(ctx context.Context, userID primitive.ObjectID, q domain.ListQuery) ([]domain.RequestProduct, int64, error) {
	return s.list(ctx, bson.M{"user": userID}, q)
}

func (s *RequestProductStore) list(ctx context.Context, filter bson.M, q domain.ListQuery) ([]domain.RequestProduct, int64, error) {
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.col.Find(ctx, filter, findOpts(q))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	requests := []domain.RequestProduct{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}
