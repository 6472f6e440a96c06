package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (bool, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error)
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	AddCategory(ctx context.Context, name string) error
	EnsureCategory(ctx context.Context, name string) error
}

type CatalogRepository interface {
	ProductRepository
	CategoryRepository

	// InTx runs fn against a repository bound to a single transaction.
	InTx(ctx context.Context, fn func(repo CatalogRepository) error) error
}
