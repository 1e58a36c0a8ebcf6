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

type SupplierStore struct {
	col *mongo.Collection
}

func NewSupplierStore(db *mongo.Database) *SupplierStore {
	return &SupplierStore{col: db.Collection("suppliers")}
}

func (s *SupplierStore) Create(ctx context.Context, sup *domain.Supplier) error {
	now := time.Now().UTC()
	sup.CreatedAt = now
	sup.UpdatedAt = now
	if sup.ID.IsZero() {
		sup.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, sup)
	return conflict(err, "supplier.create", "supplier with this name already exists")
}

func (s *SupplierStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Supplier, error) {
	var sup domain.Supplier
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sup)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sup, nil
}

func (s *SupplierStore) Update(ctx context.Context, sup *domain.Supplier) error {
	sup.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": sup.ID}, sup)
	if err != nil {
		return conflict(err, "supplier.update", "supplier with this name already exists")
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("supplier.update", "supplier", sup.ID.Hex())
	}
	return nil
}

func (s *SupplierStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("supplier.delete", "supplier", id.Hex())
	}
	return nil
}

func (s *SupplierStore) List(ctx context.Context) ([]domain.Supplier, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	suppliers := []domain.Supplier{}
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, err
	}

	return suppliers, nil
}
