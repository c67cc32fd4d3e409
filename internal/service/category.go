package service

import (
	"context"

	"trivia-api/internal/catalog"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
)

// CategoryService defines the interface for category operations
type CategoryService interface {
	ListCategories(ctx context.Context) (*dto.CategoriesResponse, error)
}

type categoryService struct {
	categories domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories domain.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

// ListCategories implements CategoryService
func (s *categoryService) ListCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return &dto.CategoriesResponse{
		Success:    true,
		Categories: catalog.CategoryLabels(categories),
	}, nil
}
