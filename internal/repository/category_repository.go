package repository

import (
	"context"
	"fmt"

	"github.com/nikolayk812/roze-storefront/internal/domain"
)

func (r *catalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListCategories: %w", err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.Category{
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
		})
	}

	return categories, nil
}

func (r *catalogRepository) AddCategory(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}

	if err := r.q.AddCategory(ctx, name); err != nil {
		return fmt.Errorf("q.AddCategory: %w", mapError(err))
	}

	return nil
}

// EnsureCategory adds the category unless it already exists.
func (r *catalogRepository) EnsureCategory(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}

	if err := r.q.EnsureCategory(ctx, name); err != nil {
		return fmt.Errorf("q.EnsureCategory: %w", err)
	}

	return nil
}
