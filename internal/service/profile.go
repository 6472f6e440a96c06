package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/port"
)

type Profiles struct {
	repo port.ProfileRepository
}

func NewProfiles(repo port.ProfileRepository) *Profiles {
	return &Profiles{repo: repo}
}

// Get returns the user's profile; found is false when none was saved yet.
func (s *Profiles) Get(ctx context.Context, userID uuid.UUID) (_ domain.Profile, found bool, _ error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, false, nil
	}
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("repo.GetProfile: %w", err)
	}

	return profile, true, nil
}

func (s *Profiles) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	profile = normalizeProfile(profile)

	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("repo.CreateProfile: %w", err)
	}

	return s.reload(ctx, profile.UserID)
}

func (s *Profiles) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	profile = normalizeProfile(profile)

	updated, err := s.repo.UpdateProfile(ctx, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.UpdateProfile: %w", err)
	}
	if !updated {
		return domain.Profile{}, fmt.Errorf("profile[%s]: %w", profile.UserID, domain.ErrNotFound)
	}

	return s.reload(ctx, profile.UserID)
}

func (s *Profiles) reload(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.GetProfile: %w", err)
	}

	return profile, nil
}

func normalizeProfile(p domain.Profile) domain.Profile {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Street = strings.TrimSpace(p.Street)
	p.Number = strings.TrimSpace(p.Number)
	p.District = strings.TrimSpace(p.District)
	p.Complement = strings.TrimSpace(p.Complement)
	p.City = strings.TrimSpace(p.City)
	p.City = p.CityOrDefault()

	return p
}
