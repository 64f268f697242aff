package service

import (
	"context"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/dto"
)

const (
	EventOrderCreated   = "order_created"
	EventOrderUpdated   = "order_updated"
	EventOrderDeleted   = "order_deleted"
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
)

type ObjectStorage interface {
	Upload(ctx context.Context, key string, file dto.FileUpload) (url string, err error)
	DeleteByKey(ctx context.Context, key string) bool
	PublicURL(key string) string
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, data interface{}) error
}

type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, order domain.Order) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, data dto.OrderRequest) (order domain.Order, err error)
	GetOrders(ctx context.Context) (orders []domain.Order, err error)
	GetOrderByID(ctx context.Context, id string) (order domain.Order, err error)
	UpdateOrder(ctx context.Context, id string, data dto.OrderUpdateRequest) (order domain.Order, err error)
	DeleteOrder(ctx context.Context, id string) (err error)
	TrackOrders(ctx context.Context, data dto.TrackOrderRequest) (orders []domain.Order, err error)
	GetOrderDetail(ctx context.Context, data dto.OrderDetailRequest) (detail dto.OrderDetailResponse, err error)
	CheckOrderStatus(ctx context.Context, data dto.StatusCheckRequest) (summary domain.OrderStatusSummary, err error)
	SyncOrderNumberSequence(ctx context.Context) (err error)
	Close()
}

type ProductService interface {
	GetProducts(ctx context.Context) (products []dto.ProductResponse, err error)
	GetProductByID(ctx context.Context, id string) (product dto.ProductResponse, err error)
	GetProductsByCategorySlug(ctx context.Context, slug string) (resp dto.ProductsByCategoryResponse, err error)
	AddProduct(ctx context.Context, data dto.ProductForm) (product dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, id string, data dto.ProductForm) (product dto.ProductResponse, err error)
	DeleteProduct(ctx context.Context, id string) (err error)
}

type CategoryService interface {
	GetCategories(ctx context.Context) (categories []domain.Category, err error)
	GetCategoryByID(ctx context.Context, id string) (category domain.Category, err error)
	AddCategory(ctx context.Context, data dto.CategoryForm) (category domain.Category, err error)
	UpdateCategory(ctx context.Context, id string, data dto.CategoryForm) (category domain.Category, err error)
	DeleteCategory(ctx context.Context, id string) (err error)
}

type ReviewService interface {
	GetReviews(ctx context.Context, productID string) (reviews []domain.Review, err error)
	AddReview(ctx context.Context, productID string, data dto.ReviewForm) (review domain.Review, err error)
	UpdateReview(ctx context.Context, productID string, reviewID string, data dto.ReviewForm) (review domain.Review, err error)
	DeleteReview(ctx context.Context, productID string, reviewID string) (err error)
}

type UserService interface {
	Signup(ctx context.Context, data dto.SignupRequest) (user dto.UserResponse, err error)
	Signin(ctx context.Context, data dto.SigninRequest) (resp dto.LoginResponse, err error)
	GetUsers(ctx context.Context) (users []dto.UserResponse, err error)
	GetUserByID(ctx context.Context, id string) (user dto.UserResponse, err error)
	UpdatePassword(ctx context.Context, id string, requesterID string, data dto.UpdatePasswordRequest) (err error)
}
