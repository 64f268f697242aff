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

type ProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewProductRepository(db *mongo.Database) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	stampCreated(&data.CreatedAt, &data.UpdatedAt)

	result, err := r.db.Collection(productsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *ProductRepositoryImpl) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	return r.find(ctx, "GetProducts", bson.D{})
}

func (r *ProductRepositoryImpl) GetProductsByCategory(ctx context.Context, categoryID primitive.ObjectID) (data []domain.Product, err error) {
	return r.find(ctx, "GetProductsByCategory", bson.D{{Key: "category", Value: categoryID}})
}

func (r *ProductRepositoryImpl) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	return r.find(ctx, "GetProductsByIDs", bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

func (r *ProductRepositoryImpl) find(ctx context.Context, component string, filter bson.D) (data []domain.Product, err error) {
	cursor, err := r.db.Collection(productsCollection).Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, err
	}

	return data, nil
}

func (r *ProductRepositoryImpl) GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(productsCollection).FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, err
	}

	return product, nil
}

func (r *ProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "description", Value: data.Description},
		{Key: "price", Value: data.Price},
		{Key: "feature", Value: data.Feature},
		{Key: "category", Value: data.Category},
		{Key: "variants", Value: data.Variants},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepositoryImpl) DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := r.db.Collection(productsCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

// AdjustVariantStock applies delta to one size of the variant with the given color.
// A negative delta only matches while the stock covers it, so check and decrement are
// a single atomic update. matched is false when no document satisfied the filter.
func (r *ProductRepositoryImpl) AdjustVariantStock(ctx context.Context, id primitive.ObjectID, color string, size domain.Size, delta int) (matched bool, err error) {
	stockField := "inventory." + size.String()

	variantFilter := bson.D{{Key: "color", Value: color}}
	if delta < 0 {
		variantFilter = append(variantFilter, bson.E{Key: stockField, Value: bson.D{{Key: "$gte", Value: -delta}}})
	}

	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "variants", Value: bson.D{{Key: "$elemMatch", Value: variantFilter}}},
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "variants.$." + stockField, Value: delta}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AdjustVariantStock").Msg("")
		return false, err
	}

	return result.MatchedCount > 0, nil
}

func (r *ProductRepositoryImpl) SetProductRating(ctx context.Context, id primitive.ObjectID, average float64, count int) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "averageRating", Value: average},
		{Key: "reviewCount", Value: count},
	}}}

	_, err = r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SetProductRating").Msg("")
		return
	}

	return nil
}
