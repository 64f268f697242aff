package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/repository"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/alimikegami/apparel-store/pkg/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var variantImageField = regexp.MustCompile(`^(frontImage|backImage)-(\d+)$`)

// SlugNotFoundError lists the slugs that would have matched.
type SlugNotFoundError struct {
	Slug      string
	Available []dto.CategorySlug
}

func (e *SlugNotFoundError) Error() string {
	return fmt.Sprintf("No category found for slug: %s", e.Slug)
}

func (e *SlugNotFoundError) Unwrap() error {
	return errs.ErrCategoryNotFound
}

type ProductServiceImpl struct {
	trx          repository.Transactor
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	reviewRepo   repository.ReviewRepository
	storage      ObjectStorage
	events       EventPublisher
}

func CreateProductService(
	trx repository.Transactor,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	reviewRepo repository.ReviewRepository,
	storage ObjectStorage,
	events EventPublisher,
) ProductService {
	return &ProductServiceImpl{
		trx:          trx,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		storage:      storage,
		events:       events,
	}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context) (products []dto.ProductResponse, err error) {
	data, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return
	}

	return s.populate(ctx, data)
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (product dto.ProductResponse, err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	data, err := s.productRepo.GetProductByID(ctx, oid)
	if err != nil {
		return
	}

	populated, err := s.populate(ctx, []domain.Product{data})
	if err != nil {
		return
	}

	return populated[0], nil
}

// GetProductsByCategorySlug compares the slug against every category name, there is no
// stored slug.
func (s *ProductServiceImpl) GetProductsByCategorySlug(ctx context.Context, slug string) (resp dto.ProductsByCategoryResponse, err error) {
	categories, err := s.categoryRepo.GetCategories(ctx)
	if err != nil {
		return
	}

	target := strings.ToLower(slug)
	var found *domain.Category
	available := make([]dto.CategorySlug, 0, len(categories))
	for i, c := range categories {
		slugified := utils.Slugify(c.Name)
		if slugified == target && found == nil {
			found = &categories[i]
		}
		available = append(available, dto.CategorySlug{Name: c.Name, SlugifiedName: slugified})
	}

	if found == nil {
		log.Ctx(ctx).Warn().Str("component", "GetProductsByCategorySlug").Str("slug", target).Msg("No category found")
		return resp, &SlugNotFoundError{Slug: target, Available: available}
	}

	data, err := s.productRepo.GetProductsByCategory(ctx, found.ID)
	if err != nil {
		return
	}

	products, err := s.populate(ctx, data)
	if err != nil {
		return
	}

	return dto.ProductsByCategoryResponse{Category: *found, Products: products}, nil
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductForm) (product dto.ProductResponse, err error) {
	if data.Variants == nil || strings.TrimSpace(*data.Variants) == "" {
		return product, errs.ErrVariantsRequired
	}

	if err = validateImages(data.Files, 0); err != nil {
		return
	}

	entity := domain.Product{}
	if err = applyProductFields(&entity, data, true); err != nil {
		return
	}

	uploads := newUploadSet(s.storage)
	entity.Variants, err = s.buildVariants(ctx, "", *data.Variants, data.Files, uploads)
	if err != nil {
		uploads.rollback(ctx)
		return
	}

	now := time.Now().UTC()
	entity.CreatedAt = now
	entity.UpdatedAt = now

	entity.ID, err = s.productRepo.AddProduct(ctx, entity)
	if err != nil {
		uploads.rollback(ctx)
		return
	}

	populated, err := s.populate(ctx, []domain.Product{entity})
	if err != nil {
		return
	}
	product = populated[0]

	s.publish(ctx, EventProductCreated, product)

	return product, nil
}

// UpdateProduct applies the sent fields. Images no longer referenced by any variant
// are removed from storage once the update is saved.
func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id string, data dto.ProductForm) (product dto.ProductResponse, err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	if err = validateImages(data.Files, 0); err != nil {
		return
	}

	entity, err := s.productRepo.GetProductByID(ctx, oid)
	if err != nil {
		return
	}
	oldImages := entity.Variants.ImageURLs()

	if err = applyProductFields(&entity, data, false); err != nil {
		return
	}

	uploads := newUploadSet(s.storage)
	if data.Variants != nil {
		entity.Variants, err = s.buildVariants(ctx, id, *data.Variants, data.Files, uploads)
		if err != nil {
			uploads.rollback(ctx)
			return
		}
	}

	if err = s.productRepo.UpdateProduct(ctx, entity); err != nil {
		uploads.rollback(ctx)
		return
	}
	entity.UpdatedAt = time.Now().UTC()

	deleteStoredImages(ctx, s.storage, unreferenced(oldImages, entity.Variants.ImageURLs()))

	populated, err := s.populate(ctx, []domain.Product{entity})
	if err != nil {
		return
	}
	product = populated[0]

	s.publish(ctx, EventProductUpdated, product)

	return product, nil
}

// DeleteProduct removes the product with its reviews, then their stored images. Orders
// keep their snapshot of the product.
func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	product, err := s.productRepo.GetProductByID(ctx, oid)
	if err != nil {
		return
	}

	reviews, err := s.reviewRepo.GetReviewsByProductID(ctx, oid)
	if err != nil {
		return
	}

	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		if err := s.productRepo.DeleteProduct(ctx, oid); err != nil {
			return err
		}
		return s.reviewRepo.DeleteReviewsByProductID(ctx, oid)
	})
	if err != nil {
		return
	}

	images := product.Variants.ImageURLs()
	for _, r := range reviews {
		images = append(images, r.Images...)
	}
	deleteStoredImages(ctx, s.storage, images)

	s.publish(ctx, EventProductDeleted, dto.ProductResponse{ID: id, Name: product.Name})

	return nil
}

func (s *ProductServiceImpl) populate(ctx context.Context, products []domain.Product) ([]dto.ProductResponse, error) {
	categories, err := loadCategories(ctx, s.categoryRepo, products)
	if err != nil {
		return nil, err
	}

	reviews, err := loadReviews(ctx, s.reviewRepo, products)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p, categories, reviews[p.ID]))
	}
	return out, nil
}

// buildVariants decodes the variants JSON and stores the files named frontImage-{i} or
// backImage-{i}; an uploaded file wins over the URL sent for the same variant.
func (s *ProductServiceImpl) buildVariants(ctx context.Context, productID string, raw string, files []dto.FileUpload, uploads *uploadSet) (domain.VariantSet, error) {
	var requests []dto.VariantRequest
	if err := json.Unmarshal([]byte(raw), &requests); err != nil {
		return domain.VariantSet{}, errs.ErrInvalidVariants
	}

	variants := make([]domain.Variant, 0, len(requests))
	for _, v := range requests {
		variants = append(variants, domain.Variant{
			Color:      strings.TrimSpace(v.Color),
			FrontImage: v.FrontImage,
			BackImage:  v.BackImage,
			Inventory:  v.Inventory,
		})
	}

	if _, err := domain.NewVariantSet(variants); err != nil {
		return domain.VariantSet{}, err
	}

	for _, f := range files {
		match := variantImageField.FindStringSubmatch(f.FieldName)
		if match == nil {
			continue
		}

		i, err := strconv.Atoi(match[2])
		if err != nil || i >= len(variants) {
			continue
		}

		url, err := uploads.add(ctx, productID, variants[i].Color, f)
		if err != nil {
			return domain.VariantSet{}, err
		}

		if match[1] == "frontImage" {
			variants[i].FrontImage = url
		} else {
			variants[i].BackImage = url
		}
	}

	return domain.NewVariantSet(variants)
}

func (s *ProductServiceImpl) publish(ctx context.Context, eventType string, product dto.ProductResponse) {
	if err := s.events.Publish(ctx, eventType, product.ID, product); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publish").Str("event_type", eventType).Msg("")
	}
}

// applyProductFields copies the sent scalar fields. On create the required ones must
// be present.
func applyProductFields(p *domain.Product, data dto.ProductForm, create bool) error {
	var verrs errs.ValidationErrors

	if data.Name != nil {
		p.Name = strings.TrimSpace(*data.Name)
	}
	if (create || data.Name != nil) && p.Name == "" {
		verrs = append(verrs, errs.FieldError{Field: "name", Tag: "required"})
	}

	if data.Description != nil {
		p.Description = strings.TrimSpace(*data.Description)
	}

	if data.Price != nil {
		p.Price = *data.Price
		if p.Price < 0 {
			verrs = append(verrs, errs.FieldError{Field: "price", Tag: "min"})
		}
	} else if create {
		verrs = append(verrs, errs.FieldError{Field: "price", Tag: "required"})
	}

	if data.Category != nil {
		categoryID, err := primitive.ObjectIDFromHex(strings.TrimSpace(*data.Category))
		if err != nil {
			verrs = append(verrs, errs.FieldError{Field: "category", Tag: "objectid"})
		} else {
			p.Category = categoryID
		}
	} else if create {
		verrs = append(verrs, errs.FieldError{Field: "category", Tag: "required"})
	}

	if data.Feature != nil {
		p.Feature = *data.Feature
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}
