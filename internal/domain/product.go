package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Price       Money
	Volume      string
	Description string
	ImageURL    string
	Category    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Category struct {
	Name string

	CreatedAt time.Time
}

// DistinctCategories returns the non-empty categories of products in the
// order they first appear.
func DistinctCategories(products []Product) []string {
	seen := make(map[string]struct{})
	result := []string{}

	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		result = append(result, p.Category)
	}

	return result
}
