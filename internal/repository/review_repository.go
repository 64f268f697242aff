package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewReviewRepository(db *mongo.Database) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) AddReview(ctx context.Context, data domain.Review) (id primitive.ObjectID, err error) {
	stampCreated(&data.CreatedAt, &data.UpdatedAt)
	if data.Images == nil {
		data.Images = []string{}
	}

	result, err := r.db.Collection(reviewsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddReview").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *ReviewRepositoryImpl) GetReviewsByProductID(ctx context.Context, productID primitive.ObjectID) (data []domain.Review, err error) {
	return r.find(ctx, "GetReviewsByProductID", bson.D{{Key: "productId", Value: productID}})
}

func (r *ReviewRepositoryImpl) GetReviewsByProductIDs(ctx context.Context, productIDs []primitive.ObjectID) (data []domain.Review, err error) {
	if len(productIDs) == 0 {
		return []domain.Review{}, nil
	}
	return r.find(ctx, "GetReviewsByProductIDs", bson.D{{Key: "productId", Value: bson.D{{Key: "$in", Value: productIDs}}}})
}

// find returns the newest reviews first.
func (r *ReviewRepositoryImpl) find(ctx context.Context, component string, filter bson.D) (data []domain.Review, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(reviewsCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = []domain.Review{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, err
	}

	return data, nil
}

func (r *ReviewRepositoryImpl) GetReviewByID(ctx context.Context, id primitive.ObjectID) (review domain.Review, err error) {
	err = r.db.Collection(reviewsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return review, errs.ErrReviewNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetReviewByID").Msg("")
		return review, err
	}

	return review, nil
}

func (r *ReviewRepositoryImpl) UpdateReview(ctx context.Context, data domain.Review) (err error) {
	if data.Images == nil {
		data.Images = []string{}
	}

	filter := bson.D{{Key: "_id", Value: data.ID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "contactNumber", Value: data.ContactNumber},
		{Key: "rating", Value: data.Rating},
		{Key: "description", Value: data.Description},
		{Key: "images", Value: data.Images},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	result, err := r.db.Collection(reviewsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateReview").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrReviewNotFound
	}

	return nil
}

func (r *ReviewRepositoryImpl) DeleteReview(ctx context.Context, id primitive.ObjectID) (err error) {
	result, err := r.db.Collection(reviewsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteReview").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrReviewNotFound
	}

	return nil
}

func (r *ReviewRepositoryImpl) DeleteReviewsByProductID(ctx context.Context, productID primitive.ObjectID) (err error) {
	_, err = r.db.Collection(reviewsCollection).DeleteMany(ctx, bson.D{{Key: "productId", Value: productID}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteReviewsByProductID").Msg("")
		return
	}

	return nil
}
