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

type OrderRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewOrderRepository(db *mongo.Database) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	stampCreated(&data.CreatedAt, &data.UpdatedAt)

	result, err := r.db.Collection(ordersCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *OrderRepositoryImpl) GetOrders(ctx context.Context) (data []domain.Order, err error) {
	return r.find(ctx, "GetOrders", bson.D{})
}

func (r *OrderRepositoryImpl) GetOrdersByContactNumber(ctx context.Context, contactNumber string) (data []domain.Order, err error) {
	return r.find(ctx, "GetOrdersByContactNumber", bson.D{{Key: "contactNumber", Value: contactNumber}})
}

func (r *OrderRepositoryImpl) find(ctx context.Context, component string, filter bson.D) (data []domain.Order, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(ordersCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = []domain.Order{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, err
	}

	return data, nil
}

func (r *OrderRepositoryImpl) GetOrderByID(ctx context.Context, id primitive.ObjectID) (order domain.Order, err error) {
	return r.findOne(ctx, "GetOrderByID", bson.D{{Key: "_id", Value: id}}, errs.ErrOrderNotFound)
}

// GetOrderByTracking matches the email as stored, so callers pass it lower-cased.
func (r *OrderRepositoryImpl) GetOrderByTracking(ctx context.Context, orderNo int64, contactNumber string, email string) (order domain.Order, err error) {
	filter := bson.D{
		{Key: "orderNo", Value: orderNo},
		{Key: "contactNumber", Value: contactNumber},
		{Key: "email", Value: email},
	}
	return r.findOne(ctx, "GetOrderByTracking", filter, errs.ErrOrderDetailsNotFound)
}

func (r *OrderRepositoryImpl) findOne(ctx context.Context, component string, filter bson.D, notFound error) (order domain.Order, err error) {
	err = r.db.Collection(ordersCollection).FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return order, notFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return order, err
	}

	return order, nil
}

func (r *OrderRepositoryImpl) GetOrderStatusSummary(ctx context.Context, orderNo int64, contactNumber string) (summary domain.OrderStatusSummary, err error) {
	filter := bson.D{
		{Key: "orderNo", Value: orderNo},
		{Key: "contactNumber", Value: contactNumber},
	}
	opts := options.FindOne().SetProjection(bson.D{
		{Key: "_id", Value: 0},
		{Key: "orderNo", Value: 1},
		{Key: "customerName", Value: 1},
		{Key: "totalAmount", Value: 1},
		{Key: "status", Value: 1},
		{Key: "createdAt", Value: 1},
	})

	err = r.db.Collection(ordersCollection).FindOne(ctx, filter, opts).Decode(&summary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return summary, errs.ErrOrderDetailsNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderStatusSummary").Msg("")
		return summary, err
	}

	return summary, nil
}

// GetMaxOrderNo returns 0 when there are no orders.
func (r *OrderRepositoryImpl) GetMaxOrderNo(ctx context.Context) (orderNo int64, err error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "orderNo", Value: -1}}).
		SetProjection(bson.D{{Key: "orderNo", Value: 1}})

	var latest domain.Order
	err = r.db.Collection(ordersCollection).FindOne(ctx, bson.D{}, opts).Decode(&latest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetMaxOrderNo").Msg("")
		return 0, err
	}

	return latest.OrderNo, nil
}

func (r *OrderRepositoryImpl) UpdateOrder(ctx context.Context, data domain.Order) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "customerName", Value: data.CustomerName},
		{Key: "contactNumber", Value: data.ContactNumber},
		{Key: "email", Value: data.Email},
		{Key: "address", Value: data.Address},
		{Key: "city", Value: data.City},
		{Key: "province", Value: data.Province},
		{Key: "pincode", Value: data.Pincode},
		{Key: "items", Value: data.Items},
		{Key: "totalAmount", Value: data.TotalAmount},
		{Key: "status", Value: data.Status},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	result, err := r.db.Collection(ordersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateOrder").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepositoryImpl) DeleteOrder(ctx context.Context, id primitive.ObjectID) (err error) {
	result, err := r.db.Collection(ordersCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteOrder").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrOrderNotFound
	}

	return nil
}
