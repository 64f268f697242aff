package service

import (
	"context"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func loadCategories(ctx context.Context, repo repository.CategoryRepository, products []domain.Product) (map[primitive.ObjectID]domain.Category, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		if !p.Category.IsZero() {
			ids = append(ids, p.Category)
		}
	}

	categories, err := repo.GetCategoriesByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]domain.Category, len(categories))
	for _, c := range categories {
		out[c.ID] = c
	}
	return out, nil
}

func loadReviews(ctx context.Context, repo repository.ReviewRepository, products []domain.Product) (map[primitive.ObjectID][]domain.Review, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	reviews, err := repo.GetReviewsByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID][]domain.Review, len(products))
	for _, r := range reviews {
		out[r.ProductID] = append(out[r.ProductID], r)
	}
	return out, nil
}

func toProductResponse(p domain.Product, categories map[primitive.ObjectID]domain.Category, reviews []domain.Review) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:            p.ID.Hex(),
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Feature:       p.Feature,
		Variants:      p.Variants,
		AverageRating: p.AverageRating,
		ReviewCount:   p.ReviewCount,
		Reviews:       reviews,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if resp.Reviews == nil {
		resp.Reviews = []domain.Review{}
	}
	if c, ok := categories[p.Category]; ok {
		resp.Category = &c
	}
	return resp
}
