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

type CategoryServiceImpl struct {
	categoryRepo repository.CategoryRepository
	storage      ObjectStorage
}

func CreateCategoryService(categoryRepo repository.CategoryRepository, storage ObjectStorage) CategoryService {
	return &CategoryServiceImpl{categoryRepo: categoryRepo, storage: storage}
}

func (s *CategoryServiceImpl) GetCategories(ctx context.Context) (categories []domain.Category, err error) {
	return s.categoryRepo.GetCategories(ctx)
}

func (s *CategoryServiceImpl) GetCategoryByID(ctx context.Context, id string) (category domain.Category, err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	return s.categoryRepo.GetCategoryByID(ctx, oid)
}

func (s *CategoryServiceImpl) AddCategory(ctx context.Context, data dto.CategoryForm) (category domain.Category, err error) {
	if data.Name == nil || strings.TrimSpace(*data.Name) == "" {
		return category, errs.ValidationErrors{{Field: "name", Tag: "required"}}
	}

	category = domain.Category{Name: strings.TrimSpace(*data.Name)}
	if data.Description != nil {
		category.Description = strings.TrimSpace(*data.Description)
	}

	uploads := newUploadSet(s.storage)
	if data.Image != nil {
		if err = validateImages([]dto.FileUpload{*data.Image}, 1); err != nil {
			return domain.Category{}, err
		}

		url, err := uploads.add(ctx, "", "", *data.Image)
		if err != nil {
			return domain.Category{}, err
		}
		category.Image = &url
	}

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	category.ID, err = s.categoryRepo.AddCategory(ctx, category)
	if err != nil {
		uploads.rollback(ctx)
		return domain.Category{}, err
	}

	return category, nil
}

// UpdateCategory ignores empty name and description values. A new image replaces the
// stored one, which is deleted after the save.
func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, id string, data dto.CategoryForm) (category domain.Category, err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	if data.Image != nil {
		if err = validateImages([]dto.FileUpload{*data.Image}, 1); err != nil {
			return
		}
	}

	category, err = s.categoryRepo.GetCategoryByID(ctx, oid)
	if err != nil {
		return
	}
	oldImage := category.Image

	if data.Name != nil && strings.TrimSpace(*data.Name) != "" {
		category.Name = strings.TrimSpace(*data.Name)
	}
	if data.Description != nil && strings.TrimSpace(*data.Description) != "" {
		category.Description = strings.TrimSpace(*data.Description)
	}

	uploads := newUploadSet(s.storage)
	if data.Image != nil {
		url, err := uploads.add(ctx, "", "", *data.Image)
		if err != nil {
			return domain.Category{}, err
		}
		category.Image = &url
	}

	if err = s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		uploads.rollback(ctx)
		return domain.Category{}, err
	}
	category.UpdatedAt = time.Now().UTC()

	if data.Image != nil && oldImage != nil {
		deleteStoredImages(ctx, s.storage, []string{*oldImage})
	}

	return category, nil
}

// DeleteCategory leaves products pointing at the deleted id.
func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id string) (err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	category, err := s.categoryRepo.GetCategoryByID(ctx, oid)
	if err != nil {
		return
	}

	if err = s.categoryRepo.DeleteCategory(ctx, oid); err != nil {
		return
	}

	if category.Image != nil {
		deleteStoredImages(ctx, s.storage, []string{*category.Image})
	}

	return nil
}
