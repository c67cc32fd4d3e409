package catalog

import (
	"context"

	"trivia-api/internal/domain"
)

// CategoryFinder is the lookup ResolveCategory needs.
type CategoryFinder interface {
	FindCategory(ctx context.Context, id int64) (*domain.Category, error)
}

// ResolveCategory returns the category with the given id or a NOT_FOUND error.
// Store failures are passed through unchanged.
func ResolveCategory(ctx context.Context, finder CategoryFinder, id int64) (*domain.Category, error) {
	category, err := finder.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NewCategoryNotFoundError(id)
	}
	return category, nil
}

// CategoryLabels maps category id to its display label.
func CategoryLabels(categories []*domain.Category) map[int64]string {
	labels := make(map[int64]string, len(categories))
	for _, c := range categories {
		labels[c.ID] = c.Type
	}
	return labels
}
