package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/roze-storefront/internal/db"
	"github.com/nikolayk812/roze-storefront/internal/port"
)

type catalogRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCatalogWithTx(tx pgx.Tx) port.CatalogRepository {
	return &catalogRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *catalogRepository) InTx(ctx context.Context, fn func(repo port.CatalogRepository) error) error {
	return inTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		return fn(&catalogRepository{q: q})
	})
}
