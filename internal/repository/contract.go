package repository

import (
	"context"

	"github.com/alimikegami/apparel-store/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transactor runs fn inside one multi-document transaction. Repository calls made
// with the ctx handed to fn join that transaction.
type Transactor interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductsByCategory(ctx context.Context, categoryID primitive.ObjectID) (data []domain.Product, err error)
	GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error)
	AdjustVariantStock(ctx context.Context, id primitive.ObjectID, color string, size domain.Size, delta int) (matched bool, err error)
	SetProductRating(ctx context.Context, id primitive.ObjectID, average float64, count int) (err error)
}

type CategoryRepository interface {
	AddCategory(ctx context.Context, data domain.Category) (id primitive.ObjectID, err error)
	GetCategories(ctx context.Context) (data []domain.Category, err error)
	GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Category, err error)
	GetCategoryByID(ctx context.Context, id primitive.ObjectID) (category domain.Category, err error)
	UpdateCategory(ctx context.Context, data domain.Category) (err error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) (err error)
}

type ReviewRepository interface {
	AddReview(ctx context.Context, data domain.Review) (id primitive.ObjectID, err error)
	GetReviewsByProductID(ctx context.Context, productID primitive.ObjectID) (data []domain.Review, err error)
	GetReviewsByProductIDs(ctx context.Context, productIDs []primitive.ObjectID) (data []domain.Review, err error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (review domain.Review, err error)
	UpdateReview(ctx context.Context, data domain.Review) (err error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) (err error)
	DeleteReviewsByProductID(ctx context.Context, productID primitive.ObjectID) (err error)
}

type OrderRepository interface {
	AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error)
	GetOrders(ctx context.Context) (data []domain.Order, err error)
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (order domain.Order, err error)
	GetOrdersByContactNumber(ctx context.Context, contactNumber string) (data []domain.Order, err error)
	GetOrderByTracking(ctx context.Context, orderNo int64, contactNumber string, email string) (order domain.Order, err error)
	GetOrderStatusSummary(ctx context.Context, orderNo int64, contactNumber string) (summary domain.OrderStatusSummary, err error)
	GetMaxOrderNo(ctx context.Context) (orderNo int64, err error)
	UpdateOrder(ctx context.Context, data domain.Order) (err error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) (err error)
}

type CounterRepository interface {
	NextSequence(ctx context.Context, name string) (seq int64, err error)
	EnsureSequenceAtLeast(ctx context.Context, name string, floor int64) (err error)
}

type UserRepository interface {
	AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error)
	GetUserByEmail(ctx context.Context, email string) (user domain.User, err error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (user domain.User, err error)
	GetUsers(ctx context.Context) (data []domain.User, err error)
	UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) (err error)
}
