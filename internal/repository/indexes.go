package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
	reviewsCollection    = "reviews"
	ordersCollection     = "orders"
	countersCollection   = "counters"
	usersCollection      = "users"
)

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		categoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		reviewsCollection: {
			{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "orderNo", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "contactNumber", Value: 1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "EnsureIndexes").Str("collection", collection).Msg("")
			return err
		}
	}

	return nil
}

