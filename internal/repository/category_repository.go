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
)

type CategoryRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) AddCategory(ctx context.Context, data domain.Category) (id primitive.ObjectID, err error) {
	stampCreated(&data.CreatedAt, &data.UpdatedAt)

	result, err := r.db.Collection(categoriesCollection).InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrDuplicateName
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "AddCategory").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *CategoryRepositoryImpl) GetCategories(ctx context.Context) (data []domain.Category, err error) {
	return r.find(ctx, "GetCategories", bson.D{})
}

func (r *CategoryRepositoryImpl) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Category, err error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}
	return r.find(ctx, "GetCategoriesByIDs", bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

func (r *CategoryRepositoryImpl) find(ctx context.Context, component string, filter bson.D) (data []domain.Category, err error) {
	cursor, err := r.db.Collection(categoriesCollection).Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = []domain.Category{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, err
	}

	return data, nil
}

func (r *CategoryRepositoryImpl) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (category domain.Category, err error) {
	err = r.db.Collection(categoriesCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return category, errs.ErrCategoryNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetCategoryByID").Msg("")
		return category, err
	}

	return category, nil
}

func (r *CategoryRepositoryImpl) UpdateCategory(ctx context.Context, data domain.Category) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "description", Value: data.Description},
		{Key: "image", Value: data.Image},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	result, err := r.db.Collection(categoriesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrDuplicateName
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateCategory").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepositoryImpl) DeleteCategory(ctx context.Context, id primitive.ObjectID) (err error) {
	result, err := r.db.Collection(categoriesCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteCategory").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrCategoryNotFound
	}

	return nil
}
