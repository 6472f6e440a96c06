package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/db"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"golang.org/x/text/currency"
)

func (r *catalogRepository) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	var (
		rows []db.Product
		err  error
	)

	if category == "" {
		rows, err = r.q.ListProducts(ctx)
	} else {
		rows, err = r.q.ListProductsByCategory(ctx, category)
	}
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	products, err := mapProductRowsToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("mapProductRowsToDomain: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	if id == uuid.Nil {
		return domain.Product{}, fmt.Errorf("%w: productID is empty", domain.ErrInvalidInput)
	}

	row, err := r.q.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", mapError(err))
	}

	product, err := mapProductRowToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductRowToDomain: %w", err)
	}

	return product, nil
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	row, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		ID:            product.ID,
		Name:          product.Name,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Volume:        product.Volume,
		Description:   product.Description,
		ImageUrl:      product.ImageURL,
		Category:      product.Category,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.CreateProduct: %w", mapError(err))
	}

	created, err := mapProductRowToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductRowToDomain: %w", err)
	}

	return created, nil
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, product domain.Product) (bool, error) {
	if product.ID == uuid.Nil {
		return false, fmt.Errorf("%w: productID is empty", domain.ErrInvalidInput)
	}

	rowsAffected, err := r.q.UpdateProduct(ctx, db.UpdateProductParams{
		ID:            product.ID,
		Name:          product.Name,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Volume:        product.Volume,
		Description:   product.Description,
		ImageUrl:      product.ImageURL,
		Category:      product.Category,
	})
	if err != nil {
		return false, fmt.Errorf("q.UpdateProduct: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *catalogRepository) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, fmt.Errorf("%w: productID is empty", domain.ErrInvalidInput)
	}

	rowsAffected, err := r.q.DeleteProduct(ctx, id)
	if err != nil {
		return false, fmt.Errorf("q.DeleteProduct: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapProductRowToDomain(row db.Product) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Price:       domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Volume:      row.Volume,
		Description: row.Description,
		ImageURL:    row.ImageUrl,
		Category:    row.Category,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func mapProductRowsToDomain(rows []db.Product) ([]domain.Product, error) {
	products := []domain.Product{}

	for _, row := range rows {
		product, err := mapProductRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductRowToDomain: %w", err)
		}

		products = append(products, product)
	}

	return products, nil
}
