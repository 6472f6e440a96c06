// Package memory implements the repository ports in process memory. It backs
// the server when no database is configured and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/port"
)

type catalogData struct {
	products   map[uuid.UUID]domain.Product
	categories map[string]domain.Category
}

func (d catalogData) clone() catalogData {
	c := catalogData{
		products:   make(map[uuid.UUID]domain.Product, len(d.products)),
		categories: make(map[string]domain.Category, len(d.categories)),
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	return c
}

type Catalog struct {
	mu   sync.Mutex
	data catalogData
}

var _ port.CatalogRepository = (*Catalog)(nil)

func NewCatalog() *Catalog {
	return &Catalog{
		data: catalogData{
			products:   make(map[uuid.UUID]domain.Product),
			categories: make(map[string]domain.Category),
		},
	}
}

func (c *Catalog) ListProducts(_ context.Context, category string) ([]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return listProducts(c.data, category), nil
}

func (c *Catalog) GetProduct(_ context.Context, id uuid.UUID) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return getProduct(c.data, id)
}

func (c *Catalog) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return createProduct(c.data, product)
}

func (c *Catalog) UpdateProduct(_ context.Context, product domain.Product) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return updateProduct(c.data, product)
}

func (c *Catalog) DeleteProduct(_ context.Context, id uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return deleteProduct(c.data, id)
}

func (c *Catalog) ListCategories(_ context.Context) ([]domain.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return listCategories(c.data), nil
}

func (c *Catalog) AddCategory(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return addCategory(c.data, name, false)
}

func (c *Catalog) EnsureCategory(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return addCategory(c.data, name, true)
}

// InTx applies fn to a copy of the data and publishes the copy only when fn
// succeeds.
func (c *Catalog) InTx(ctx context.Context, fn func(repo port.CatalogRepository) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := &catalogTx{data: c.data.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	c.data = tx.data

	return nil
}

// catalogTx is used while Catalog.mu is held.
type catalogTx struct {
	data catalogData
}

func (t *catalogTx) ListProducts(_ context.Context, category string) ([]domain.Product, error) {
	return listProducts(t.data, category), nil
}

func (t *catalogTx) GetProduct(_ context.Context, id uuid.UUID) (domain.Product, error) {
	return getProduct(t.data, id)
}

func (t *catalogTx) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	return createProduct(t.data, product)
}

func (t *catalogTx) UpdateProduct(_ context.Context, product domain.Product) (bool, error) {
	return updateProduct(t.data, product)
}

func (t *catalogTx) DeleteProduct(_ context.Context, id uuid.UUID) (bool, error) {
	return deleteProduct(t.data, id)
}

func (t *catalogTx) ListCategories(_ context.Context) ([]domain.Category, error) {
	return listCategories(t.data), nil
}

func (t *catalogTx) AddCategory(_ context.Context, name string) error {
	return addCategory(t.data, name, false)
}

func (t *catalogTx) EnsureCategory(_ context.Context, name string) error {
	return addCategory(t.data, name, true)
}

func (t *catalogTx) InTx(_ context.Context, fn func(repo port.CatalogRepository) error) error {
	return fn(t)
}

func listProducts(d catalogData, category string) []domain.Product {
	result := []domain.Product{}
	for _, p := range d.products {
		if category != "" && p.Category != category {
			continue
		}
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].Name < result[j].Name
	})

	return result
}

func getProduct(d catalogData, id uuid.UUID) (domain.Product, error) {
	if id == uuid.Nil {
		return domain.Product{}, fmt.Errorf("%w: productID is empty", domain.ErrInvalidInput)
	}

	p, ok := d.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", id, domain.ErrNotFound)
	}

	return p, nil
}

func createProduct(d catalogData, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if _, ok := d.products[product.ID]; ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", product.ID, domain.ErrAlreadyExists)
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	d.products[product.ID] = product

	return product, nil
}

func updateProduct(d catalogData, product domain.Product) (bool, error) {
	if product.ID == uuid.Nil {
		return false, fmt.Errorf("%w: productID is empty", domain.ErrInvalidInput)
	}

	existing, ok := d.products[product.ID]
	if !ok {
		return false, nil
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	d.products[product.ID] = product

	return true, nil
}

func deleteProduct(d catalogData, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, fmt.Errorf("%w: productID is empty", domain.ErrInvalidInput)
	}

	if _, ok := d.products[id]; !ok {
		return false, nil
	}
	delete(d.products, id)

	return true, nil
}

func listCategories(d catalogData) []domain.Category {
	result := make([]domain.Category, 0, len(d.categories))
	for _, c := range d.categories {
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

func addCategory(d catalogData, name string, ignoreExisting bool) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}

	if _, ok := d.categories[name]; ok {
		if ignoreExisting {
			return nil
		}
		return fmt.Errorf("category[%s]: %w", name, domain.ErrAlreadyExists)
	}
	d.categories[name] = domain.Category{Name: name, CreatedAt: time.Now()}

	return nil
}
