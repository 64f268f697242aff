package dto

import (
	"time"

	"github.com/alimikegami/apparel-store/internal/domain"
)

// ProductResponse is a product with its category and reviews populated. Category is
// nil when the product points at a deleted category.
type ProductResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         float64           `json:"price"`
	Feature       bool              `json:"feature"`
	Category      *domain.Category  `json:"category"`
	Variants      domain.VariantSet `json:"variants"`
	AverageRating float64           `json:"averageRating"`
	ReviewCount   int               `json:"reviewCount"`
	Reviews       []domain.Review   `json:"reviews"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type CategorySlug struct {
	Name          string `json:"name"`
	SlugifiedName string `json:"slugifiedName"`
}

type ProductsByCategoryResponse struct {
	Category domain.Category   `json:"category"`
	Products []ProductResponse `json:"products"`
}
