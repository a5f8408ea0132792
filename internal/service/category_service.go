package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// GetAll lists all categories.
func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create adds a category.
func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	name, err := categoryName(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	category := &model.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Str("category_id", category.ID.String()).Str("name", name).Msg("category created")
	return category, nil
}

// Update renames a category.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	name, err := categoryName(req)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:        id,
		Name:      name,
		UpdatedAt: time.Now(),
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if err == model.ErrCategoryNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to update category")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// Delete removes a category.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if err == model.ErrCategoryNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func categoryName(req *model.CategoryRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("category request is nil")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", model.NewDomainError(model.ErrCodeMissingField, "Category name is required")
	}
	return name, nil
}
