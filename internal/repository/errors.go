package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/roze-storefront/internal/domain"
)

const uniqueViolation = "23505"

// mapError translates driver errors into domain errors, keeping the cause.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Join(domain.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Join(domain.ErrAlreadyExists, err)
	}

	return err
}
