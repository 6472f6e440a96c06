package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
)

type AccountRepository interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	CreateSession(ctx context.Context, session domain.Session) (domain.Session, error)
	GetSession(ctx context.Context, token uuid.UUID) (domain.Session, error)
	DeleteSession(ctx context.Context, token uuid.UUID) (bool, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	InTx(ctx context.Context, fn func(repo AccountRepository) error) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	CreateProfile(ctx context.Context, profile domain.Profile) error
	UpdateProfile(ctx context.Context, profile domain.Profile) (bool, error)
}
