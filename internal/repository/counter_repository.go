package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const OrderNoSequence = "orderNo"

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type CounterRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewCounterRepository(db *mongo.Database) CounterRepository {
	return &CounterRepositoryImpl{db: db}
}

// NextSequence increments and returns the named counter in one document update, so
// concurrent callers never observe the same value. The first call returns 1.
func (r *CounterRepositoryImpl) NextSequence(ctx context.Context, name string) (seq int64, err error) {
	filter := bson.D{{Key: "_id", Value: name}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c counter
	err = r.db.Collection(countersCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&c)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "NextSequence").Str("sequence", name).Msg("")
		return 0, err
	}

	return c.Seq, nil
}

// EnsureSequenceAtLeast raises the counter to floor. It never lowers it.
func (r *CounterRepositoryImpl) EnsureSequenceAtLeast(ctx context.Context, name string, floor int64) (err error) {
	filter := bson.D{{Key: "_id", Value: name}}
	update := bson.D{{Key: "$max", Value: bson.D{{Key: "seq", Value: floor}}}}
	opts := options.Update().SetUpsert(true)

	_, err = r.db.Collection(countersCollection).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureSequenceAtLeast").Str("sequence", name).Msg("")
		return
	}

	return nil
}
