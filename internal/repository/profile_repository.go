package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/roze-storefront/internal/db"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/port"
)

type profileRepository struct {
	q *db.Queries
}

func NewProfile(pool *pgxpool.Pool) port.ProfileRepository {
	return &profileRepository{
		q: db.New(pool),
	}
}

func NewProfileWithTx(tx pgx.Tx) port.ProfileRepository {
	return &profileRepository{
		q: db.New(tx),
	}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	if userID == uuid.Nil {
		return domain.Profile{}, fmt.Errorf("userID is empty")
	}

	row, err := r.q.GetProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("q.GetProfile: %w", mapError(err))
	}

	return domain.Profile{
		UserID:     row.UserID,
		FullName:   row.FullName,
		Phone:      row.Phone,
		Street:     row.Street,
		Number:     row.Number,
		District:   row.District,
		Complement: row.Complement,
		City:       row.City,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile domain.Profile) error {
	if profile.UserID == uuid.Nil {
		return fmt.Errorf("userID is empty")
	}

	err := r.q.CreateProfile(ctx, db.CreateProfileParams{
		UserID:     profile.UserID,
		FullName:   profile.FullName,
		Phone:      profile.Phone,
		Street:     profile.Street,
		Number:     profile.Number,
		District:   profile.District,
		Complement: profile.Complement,
		City:       profile.CityOrDefault(),
	})
	if err != nil {
		return fmt.Errorf("q.CreateProfile: %w", mapError(err))
	}

	return nil
}

func (r *profileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) (bool, error) {
	if profile.UserID == uuid.Nil {
		return false, fmt.Errorf("userID is empty")
	}

	rowsAffected, err := r.q.UpdateProfile(ctx, db.UpdateProfileParams{
		UserID:     profile.UserID,
		FullName:   profile.FullName,
		Phone:      profile.Phone,
		Street:     profile.Street,
		Number:     profile.Number,
		District:   profile.District,
		Complement: profile.Complement,
		City:       profile.CityOrDefault(),
	})
	if err != nil {
		return false, fmt.Errorf("q.UpdateProfile: %w", err)
	}

	return rowsAffected > 0, nil
}
