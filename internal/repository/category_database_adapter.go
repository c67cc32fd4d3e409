package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

const selectCategories = `SELECT id "id", type "type" FROM categories`

type CategoryDatabaseAdapter struct {
	db DBTX
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db DBTX) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// ListCategories returns all categories ordered by id
func (r *CategoryDatabaseAdapter) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var rows []models.Category
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, selectCategories+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*domain.Category, len(rows))
	for i := range rows {
		categories[i] = convertToDomainCategory(&rows[i])
	}
	return categories, nil
}

// FindCategory returns nil, nil when the id is unknown
func (r *CategoryDatabaseAdapter) FindCategory(ctx context.Context, id int64) (*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)
	var row models.Category
	err := exec.GetContext(ctx, &row, exec.Rebind(selectCategories+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category %d: %w", id, err)
	}
	return convertToDomainCategory(&row), nil
}

func convertToDomainCategory(category *models.Category) *domain.Category {
	return &domain.Category{
		ID:   category.ID,
		Type: category.Type,
	}
}
