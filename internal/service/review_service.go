package service

import (
	"context"
	"strings"
	"time"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/repository"
	"github.com/alimikegami/apparel-store/pkg/errs"
)

// ReviewServiceImpl writes each review change and the product's rating in the same
// transaction.
type ReviewServiceImpl struct {
	trx         repository.Transactor
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	ratings     *RatingAggregator
	storage     ObjectStorage
}

func CreateReviewService(
	trx repository.Transactor,
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	ratings *RatingAggregator,
	storage ObjectStorage,
) ReviewService {
	return &ReviewServiceImpl{
		trx:         trx,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		ratings:     ratings,
		storage:     storage,
	}
}

func (s *ReviewServiceImpl) GetReviews(ctx context.Context, productID string) (reviews []domain.Review, err error) {
	pid, err := parseID(productID)
	if err != nil {
		return
	}

	return s.reviewRepo.GetReviewsByProductID(ctx, pid)
}

func (s *ReviewServiceImpl) AddReview(ctx context.Context, productID string, data dto.ReviewForm) (review domain.Review, err error) {
	pid, err := parseID(productID)
	if err != nil {
		return
	}

	if _, err = s.productRepo.GetProductByID(ctx, pid); err != nil {
		return
	}

	if err = validateImages(data.Images, MaxReviewImages); err != nil {
		return
	}

	review = domain.Review{ProductID: pid, Images: []string{}}
	if err = applyReviewFields(&review, data, true); err != nil {
		return domain.Review{}, err
	}

	uploads := newUploadSet(s.storage)
	for _, f := range data.Images {
		url, err := uploads.add(ctx, productID, "", f)
		if err != nil {
			uploads.rollback(ctx)
			return domain.Review{}, err
		}
		review.Images = append(review.Images, url)
	}

	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		id, err := s.reviewRepo.AddReview(ctx, review)
		if err != nil {
			return err
		}
		review.ID = id

		return s.ratings.OnReviewChanged(ctx, pid)
	})
	if err != nil {
		uploads.rollback(ctx)
		return domain.Review{}, err
	}

	return review, nil
}

// UpdateReview appends uploaded images and drops the ones listed in DeletedImages.
// Only images that belonged to the review are removed from storage.
func (s *ReviewServiceImpl) UpdateReview(ctx context.Context, productID string, reviewID string, data dto.ReviewForm) (review domain.Review, err error) {
	review, err = s.findReview(ctx, productID, reviewID)
	if err != nil {
		return
	}

	if err = validateImages(data.Images, MaxReviewImages); err != nil {
		return domain.Review{}, err
	}

	if err = applyReviewFields(&review, data, false); err != nil {
		return domain.Review{}, err
	}

	uploads := newUploadSet(s.storage)
	for _, f := range data.Images {
		url, err := uploads.add(ctx, productID, "", f)
		if err != nil {
			uploads.rollback(ctx)
			return domain.Review{}, err
		}
		review.Images = append(review.Images, url)
	}

	var removed []string
	if len(data.DeletedImages) > 0 {
		drop := make(map[string]struct{}, len(data.DeletedImages))
		for _, url := range data.DeletedImages {
			drop[url] = struct{}{}
		}

		kept := make([]string, 0, len(review.Images))
		for _, url := range review.Images {
			if _, ok := drop[url]; ok {
				removed = append(removed, url)
				continue
			}
			kept = append(kept, url)
		}
		review.Images = kept
	}

	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		if err := s.reviewRepo.UpdateReview(ctx, review); err != nil {
			return err
		}

		return s.ratings.OnReviewChanged(ctx, review.ProductID)
	})
	if err != nil {
		uploads.rollback(ctx)
		return domain.Review{}, err
	}
	review.UpdatedAt = time.Now().UTC()

	deleteStoredImages(ctx, s.storage, removed)

	return review, nil
}

func (s *ReviewServiceImpl) DeleteReview(ctx context.Context, productID string, reviewID string) (err error) {
	review, err := s.findReview(ctx, productID, reviewID)
	if err != nil {
		return
	}

	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		if err := s.reviewRepo.DeleteReview(ctx, review.ID); err != nil {
			return err
		}

		return s.ratings.OnReviewChanged(ctx, review.ProductID)
	})
	if err != nil {
		return
	}

	deleteStoredImages(ctx, s.storage, review.Images)

	return nil
}

// findReview only returns reviews of the given product.
func (s *ReviewServiceImpl) findReview(ctx context.Context, productID string, reviewID string) (review domain.Review, err error) {
	pid, err := parseID(productID)
	if err != nil {
		return
	}

	rid, err := parseID(reviewID)
	if err != nil {
		return
	}

	review, err = s.reviewRepo.GetReviewByID(ctx, rid)
	if err != nil {
		return
	}

	if review.ProductID != pid {
		return domain.Review{}, errs.ErrReviewNotFound
	}

	return review, nil
}

func applyReviewFields(r *domain.Review, data dto.ReviewForm, create bool) error {
	var verrs errs.ValidationErrors

	text := func(field string, value *string, dst *string) {
		if value != nil {
			*dst = strings.TrimSpace(*value)
		}
		if (create || value != nil) && *dst == "" {
			verrs = append(verrs, errs.FieldError{Field: field, Tag: "required"})
		}
	}

	text("name", data.Name, &r.Name)
	text("contactNumber", data.ContactNumber, &r.ContactNumber)

	if data.Rating != nil {
		r.Rating = *data.Rating
		if r.Rating < domain.MinRating || r.Rating > domain.MaxRating {
			verrs = append(verrs, errs.FieldError{Field: "rating", Tag: "range"})
		}
	} else if create {
		verrs = append(verrs, errs.FieldError{Field: "rating", Tag: "required"})
	}

	text("description", data.Description, &r.Description)

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}
