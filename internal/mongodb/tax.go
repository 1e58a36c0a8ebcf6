package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asalem/souq/internal/domain"
)

// TaxStore keeps a single configuration document; Find returns whichever
// document exists, Create and Update maintain it.
type TaxStore struct {
	col *mongo.Collection
}

func NewTaxStore(db *mongo.Database) *TaxStore {
	return &TaxStore{col: db.Collection("taxes")}
}

func (s *TaxStore) Find(ctx context.Context) (*domain.Tax, error) {
	var t domain.Tax
	err := s.col.FindOne(ctx, bson.M{}).Decode(&t)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TaxStore) Create(ctx context.Context, t *domain.Tax) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, t)
	return err
}

func (s *TaxStore) Update(ctx context.Context, t *domain.Tax) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("tax.update", "tax configuration", t.ID.Hex())
	}
	return nil
}
