package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/port"
	"github.com/nikolayk812/roze-storefront/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type ImageUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// ProductInput is what the admin form submits. A zero ID creates a product.
type ProductInput struct {
	ID          uuid.UUID
	Name        string
	Price       string
	Volume      string
	Description string
	Category    string
	NewCategory string
	Image       *ImageUpload
}

type Catalog struct {
	repo     port.CatalogRepository
	images   port.ImageStore
	currency currency.Unit
	now      func() time.Time
	log      *zap.Logger
}

func NewCatalog(repo port.CatalogRepository, images port.ImageStore, cur currency.Unit, log *zap.Logger) *Catalog {
	return &Catalog{
		repo:     repo,
		images:   images,
		currency: cur,
		now:      time.Now,
		log:      log,
	}
}

func (s *Catalog) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, fmt.Errorf("repo.ListProducts: %w", err)
	}

	return products, nil
}

func (s *Catalog) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("repo.GetProduct: %w", err)
	}

	return product, nil
}

// ProductCategories lists the categories in use by at least one product.
func (s *Catalog) ProductCategories(ctx context.Context) ([]string, error) {
	products, err := s.repo.ListProducts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("repo.ListProducts: %w", err)
	}

	return domain.DistinctCategories(products), nil
}

func (s *Catalog) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListCategories: %w", err)
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	return names, nil
}

func (s *Catalog) AddCategory(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: category name is empty", domain.ErrInvalidInput)
	}

	if err := s.repo.AddCategory(ctx, name); err != nil {
		return "", fmt.Errorf("repo.AddCategory: %w", err)
	}

	return name, nil
}

// SaveProduct creates or updates a product. A new image is uploaded before
// the database write; a new category is created in the same transaction as
// the product.
func (s *Catalog) SaveProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	product, err := s.productFromInput(in)
	if err != nil {
		return domain.Product{}, err
	}

	if in.ID != uuid.Nil {
		existing, err := s.repo.GetProduct(ctx, in.ID)
		if err != nil {
			return domain.Product{}, fmt.Errorf("repo.GetProduct: %w", err)
		}
		product.ImageURL = existing.ImageURL
	}

	if in.Image != nil {
		imageURL, err := s.uploadImage(ctx, *in.Image)
		if err != nil {
			return domain.Product{}, fmt.Errorf("uploadImage: %w", err)
		}
		product.ImageURL = imageURL
	}

	newCategory := strings.TrimSpace(in.NewCategory)
	if newCategory != "" {
		product.Category = newCategory
	}

	var saved domain.Product
	err = s.repo.InTx(ctx, func(repo port.CatalogRepository) error {
		if newCategory != "" {
			if err := repo.EnsureCategory(ctx, newCategory); err != nil {
				return fmt.Errorf("repo.EnsureCategory: %w", err)
			}
		}

		if in.ID == uuid.Nil {
			created, err := repo.CreateProduct(ctx, product)
			if err != nil {
				return fmt.Errorf("repo.CreateProduct: %w", err)
			}
			saved = created
			return nil
		}

		updated, err := repo.UpdateProduct(ctx, product)
		if err != nil {
			return fmt.Errorf("repo.UpdateProduct: %w", err)
		}
		if !updated {
			return fmt.Errorf("product[%s]: %w", product.ID, domain.ErrNotFound)
		}

		saved, err = repo.GetProduct(ctx, product.ID)
		if err != nil {
			return fmt.Errorf("repo.GetProduct: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	s.log.Info("product saved",
		zap.String("product_id", saved.ID.String()),
		zap.String("name", saved.Name),
		zap.Bool("created", in.ID == uuid.Nil))

	return saved, nil
}

func (s *Catalog) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("repo.DeleteProduct: %w", err)
	}
	if !deleted {
		return fmt.Errorf("product[%s]: %w", id, domain.ErrNotFound)
	}

	s.log.Info("product deleted", zap.String("product_id", id.String()))

	return nil
}

func (s *Catalog) productFromInput(in ProductInput) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is empty", domain.ErrInvalidInput)
	}

	price, err := ParsePrice(in.Price)
	if err != nil {
		return domain.Product{}, err
	}

	// stored prices carry the currency's minor unit only
	amount := domain.Money{Amount: price, Currency: s.currency}.Round()

	return domain.Product{
		ID:          in.ID,
		Name:        name,
		Price:       domain.Money{Amount: amount, Currency: s.currency},
		Volume:      strings.TrimSpace(in.Volume),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
	}, nil
}

func (s *Catalog) uploadImage(ctx context.Context, img ImageUpload) (string, error) {
	if s.images == nil {
		return "", errors.New("image store is not configured")
	}

	name := storage.ObjectName(s.now(), img.FileName)

	object, err := s.images.Upload(ctx, name, img.ContentType, img.Body)
	if err != nil {
		return "", fmt.Errorf("images.Upload: %w", err)
	}

	s.log.Debug("image uploaded", zap.String("object", object))

	return s.images.PublicURL(object), nil
}

// ParsePrice reads a non-negative decimal price; a comma is accepted as the
// decimal separator.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: price is empty", domain.ErrInvalidInput)
	}
	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price[%s] is not a number", domain.ErrInvalidInput, raw)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}

	return price, nil
}
