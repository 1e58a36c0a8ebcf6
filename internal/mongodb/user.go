package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asalem/souq/internal/domain"
)

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, u)
	return conflict(err, "user.create", "user with this email already exists")
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if none(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return conflict(err, "user.update", "user with this email already exists")
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("user.update", "user", u.ID.Hex())
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("user.delete", "user", id.Hex())
	}
	return nil
}

func (s *UserStore) List(ctx context.Context, q domain.ListQuery, f domain.UserFilter) ([]domain.User, int64, error) {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = primitive.Regex{Pattern: f.Name, Options: "i"}
	}
	if f.Email != "" {
		filter["email"] = primitive.Regex{Pattern: f.Email, Options: "i"}
	}
	if f.Role != "" {
		filter["role"] = f.Role
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.col.Find(ctx, filter, findOpts(q))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
