package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultCity = "Picos"

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string

	CreatedAt time.Time
}

type Session struct {
	Token  uuid.UUID
	UserID uuid.UUID

	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Profile holds the customer's contact and delivery details, keyed by user.
type Profile struct {
	UserID     uuid.UUID
	FullName   string
	Phone      string
	Street     string
	Number     string
	District   string
	Complement string
	City       string

	UpdatedAt time.Time
}

func (p Profile) CityOrDefault() string {
	if strings.TrimSpace(p.City) == "" {
		return DefaultCity
	}
	return p.City
}

// CanCheckout reports whether the profile carries the fields an order needs.
func (p Profile) CanCheckout() bool {
	return strings.TrimSpace(p.FullName) != "" && strings.TrimSpace(p.Phone) != ""
}
