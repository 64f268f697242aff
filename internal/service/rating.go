package service

import (
	"context"
	"errors"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/repository"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingAggregator owns averageRating and reviewCount. Nothing else writes them.
type RatingAggregator struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
}

func CreateRatingAggregator(productRepo repository.ProductRepository, reviewRepo repository.ReviewRepository) *RatingAggregator {
	return &RatingAggregator{productRepo: productRepo, reviewRepo: reviewRepo}
}

func (a *RatingAggregator) RecomputeRating(ctx context.Context, productID primitive.ObjectID) error {
	reviews, err := a.reviewRepo.GetReviewsByProductID(ctx, productID)
	if err != nil {
		return err
	}

	average, count := domain.RatingSummary(reviews)

	return a.productRepo.SetProductRating(ctx, productID, average, count)
}

// OnReviewChanged must be called once after every review create, update and delete.
func (a *RatingAggregator) OnReviewChanged(ctx context.Context, productID primitive.ObjectID) error {
	if err := a.RecomputeRating(ctx, productID); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "OnReviewChanged").Str("product_id", productID.Hex()).Msg("")
		return err
	}

	return nil
}

// ReconcileAll recomputes every product, carrying on past individual failures.
func (a *RatingAggregator) ReconcileAll(ctx context.Context) error {
	products, err := a.productRepo.GetProducts(ctx)
	if err != nil {
		return err
	}

	var failures []error
	for _, product := range products {
		if err := a.RecomputeRating(ctx, product.ID); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "ReconcileAll").Str("product_id", product.ID.Hex()).Msg("")
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

// ReconcileJob is the scheduled entry point.
func (a *RatingAggregator) ReconcileJob() {
	log.Info().Str("component", "ReconcileJob").Msg("cron starts")

	if err := a.ReconcileAll(context.Background()); err != nil {
		log.Error().Err(err).Str("component", "ReconcileJob").Msg("")
	}
}
