// Package mongodb implements the domain store interfaces on top of the
// MongoDB Go driver. Find methods return (nil, nil) when no document
// matches; unique-index violations come back as domain conflict errors.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asalem/souq/internal/domain"
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique indexes the document model relies on.
// Creation is idempotent; existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"categories": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		"subcategories": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		"brands": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		"suppliers": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		"coupons": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		"products": {
			{Keys: bson.D{{Key: "title", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "brand", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}, {Key: "ratingsAverage", Value: -1}}},
		},
		"reviews": {
			// One review per user per product.
			{Keys: bson.D{{Key: "product", Value: 1}, {Key: "user", Value: 1}}, Options: unique},
		},
		"carts": {
			// One cart per user: closes the lost-cart race on concurrent
			// first adds.
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: unique},
		},
		"requestproducts": {
			{Keys: bson.D{{Key: "titleNeed", Value: 1}}, Options: unique},
		},
	}

	for col, models := range indexes {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", col, err)
		}
	}

	return nil
}

// conflict maps a duplicate-key error to a domain conflict, passing every
// other error through unchanged.
func conflict(err error, op, message string) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return domain.Conflict(op, message)
	}
	return err
}

// none reports whether err is the driver's no-document sentinel.
func none(err error) bool {
	return err == mongo.ErrNoDocuments
}

// sortSpec translates the enumerated sort order into a Mongo sort document.
func sortSpec(s domain.SortOrder) bson.D {
	switch s {
	case domain.SortOldestFirst:
		return bson.D{{Key: "createdAt", Value: 1}}
	case domain.SortNameAsc:
		return bson.D{{Key: "name", Value: 1}}
	case domain.SortNameDesc:
		return bson.D{{Key: "name", Value: -1}}
	case domain.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case domain.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case domain.SortRatingDesc:
		return bson.D{{Key: "ratingsAverage", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// findOpts builds pagination, sort and projection options for a listing.
func findOpts(q domain.ListQuery) *options.FindOptions {
	q = q.Normalize()
	opts := options.Find().
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit)).
		SetSort(sortSpec(q.SortBy))

	if len(q.Fields) > 0 {
		projection := bson.M{}
		for _, f := range q.Fields {
			projection[f] = 1
		}
		opts.SetProjection(projection)
	}

	return opts
}
