package controller

import (
	"context"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/dto"
)

type mockOrderService struct {
	createFunc func(ctx context.Context, data dto.OrderRequest) (domain.Order, error)
	updateFunc func(ctx context.Context, id string, data dto.OrderUpdateRequest) (domain.Order, error)
	deleteFunc func(ctx context.Context, id string) error
	trackFunc  func(ctx context.Context, data dto.TrackOrderRequest) ([]domain.Order, error)
	detailFunc func(ctx context.Context, data dto.OrderDetailRequest) (dto.OrderDetailResponse, error)
	statusFunc func(ctx context.Context, data dto.StatusCheckRequest) (domain.OrderStatusSummary, error)
	getFunc    func(ctx context.Context, id string) (domain.Order, error)
}

func (m *mockOrderService) Close() {}

func (m *mockOrderService) CreateOrder(ctx context.Context, data dto.OrderRequest) (domain.Order, error) {
	return m.createFunc(ctx, data)
}

func (m *mockOrderService) GetOrders(ctx context.Context) ([]domain.Order, error) {
	return []domain.Order{}, nil
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	return m.getFunc(ctx, id)
}

func (m *mockOrderService) UpdateOrder(ctx context.Context, id string, data dto.OrderUpdateRequest) (domain.Order, error) {
	return m.updateFunc(ctx, id, data)
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockOrderService) TrackOrders(ctx context.Context, data dto.TrackOrderRequest) ([]domain.Order, error) {
	return m.trackFunc(ctx, data)
}

func (m *mockOrderService) GetOrderDetail(ctx context.Context, data dto.OrderDetailRequest) (dto.OrderDetailResponse, error) {
	return m.detailFunc(ctx, data)
}

func (m *mockOrderService) CheckOrderStatus(ctx context.Context, data dto.StatusCheckRequest) (domain.OrderStatusSummary, error) {
	return m.statusFunc(ctx, data)
}

func (m *mockOrderService) SyncOrderNumberSequence(ctx context.Context) error {
	return nil
}

type mockProductService struct {
	addFunc    func(ctx context.Context, data dto.ProductForm) (dto.ProductResponse, error)
	updateFunc func(ctx context.Context, id string, data dto.ProductForm) (dto.ProductResponse, error)
	slugFunc   func(ctx context.Context, slug string) (dto.ProductsByCategoryResponse, error)
	getFunc    func(ctx context.Context, id string) (dto.ProductResponse, error)
}

func (m *mockProductService) GetProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	return []dto.ProductResponse{}, nil
}

func (m *mockProductService) GetProductByID(ctx context.Context, id string) (dto.ProductResponse, error) {
	return m.getFunc(ctx, id)
}

func (m *mockProductService) GetProductsByCategorySlug(ctx context.Context, slug string) (dto.ProductsByCategoryResponse, error) {
	return m.slugFunc(ctx, slug)
}

func (m *mockProductService) AddProduct(ctx context.Context, data dto.ProductForm) (dto.ProductResponse, error) {
	return m.addFunc(ctx, data)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, id string, data dto.ProductForm) (dto.ProductResponse, error) {
	return m.updateFunc(ctx, id, data)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, id string) error {
	return nil
}

type mockCategoryService struct {
	addFunc func(ctx context.Context, data dto.CategoryForm) (domain.Category, error)
}

func (m *mockCategoryService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	return domain.Category{}, nil
}

func (m *mockCategoryService) AddCategory(ctx context.Context, data dto.CategoryForm) (domain.Category, error) {
	return m.addFunc(ctx, data)
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, id string, data dto.CategoryForm) (domain.Category, error) {
	return domain.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id string) error {
	return nil
}

type mockReviewService struct {
	addFunc    func(ctx context.Context, productID string, data dto.ReviewForm) (domain.Review, error)
	updateFunc func(ctx context.Context, productID string, reviewID string, data dto.ReviewForm) (domain.Review, error)
}

func (m *mockReviewService) GetReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	return []domain.Review{}, nil
}

func (m *mockReviewService) AddReview(ctx context.Context, productID string, data dto.ReviewForm) (domain.Review, error) {
	return m.addFunc(ctx, productID, data)
}

func (m *mockReviewService) UpdateReview(ctx context.Context, productID string, reviewID string, data dto.ReviewForm) (domain.Review, error) {
	return m.updateFunc(ctx, productID, reviewID, data)
}

func (m *mockReviewService) DeleteReview(ctx context.Context, productID string, reviewID string) error {
	return nil
}

type mockUserService struct {
	signupFunc   func(ctx context.Context, data dto.SignupRequest) (dto.UserResponse, error)
	signinFunc   func(ctx context.Context, data dto.SigninRequest) (dto.LoginResponse, error)
	getFunc      func(ctx context.Context, id string) (dto.UserResponse, error)
	passwordFunc func(ctx context.Context, id string, requesterID string, data dto.UpdatePasswordRequest) error
}

func (m *mockUserService) Signup(ctx context.Context, data dto.SignupRequest) (dto.UserResponse, error) {
	return m.signupFunc(ctx, data)
}

func (m *mockUserService) Signin(ctx context.Context, data dto.SigninRequest) (dto.LoginResponse, error) {
	return m.signinFunc(ctx, data)
}

func (m *mockUserService) GetUsers(ctx context.Context) ([]dto.UserResponse, error) {
	return []dto.UserResponse{}, nil
}

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (dto.UserResponse, error) {
	return m.getFunc(ctx, id)
}

func (m *mockUserService) UpdatePassword(ctx context.Context, id string, requesterID string, data dto.UpdatePasswordRequest) error {
	return m.passwordFunc(ctx, id, requesterID, data)
}
