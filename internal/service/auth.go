package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/port"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthOption func(*Auth)

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) AuthOption {
	return func(a *Auth) {
		a.hashCost = cost
	}
}

func WithAuthClock(now func() time.Time) AuthOption {
	return func(a *Auth) {
		a.now = now
	}
}

type Auth struct {
	repo     port.AccountRepository
	ttl      time.Duration
	hashCost int
	now      func() time.Time
	log      *zap.Logger
}

func NewAuth(repo port.AccountRepository, ttl time.Duration, log *zap.Logger, opts ...AuthOption) *Auth {
	a := &Auth{
		repo:     repo,
		ttl:      ttl,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// SignUp registers the user and opens a session for it.
func (s *Auth) SignUp(ctx context.Context, email, password, confirmation string) (domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return domain.Session{}, fmt.Errorf("%w: email is not valid", domain.ErrInvalidInput)
	}
	if password != confirmation {
		return domain.Session{}, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return domain.Session{}, fmt.Errorf("%w: password must have at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return domain.Session{}, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	var session domain.Session
	err = s.repo.InTx(ctx, func(repo port.AccountRepository) error {
		user, err := repo.CreateUser(ctx, domain.User{Email: email, PasswordHash: string(hash)})
		if err != nil {
			return fmt.Errorf("repo.CreateUser: %w", err)
		}

		session, err = repo.CreateSession(ctx, s.newSession(user.ID))
		if err != nil {
			return fmt.Errorf("repo.CreateSession: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}

	s.log.Info("user signed up", zap.String("user_id", session.UserID.String()))

	return session, nil
}

func (s *Auth) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.GetUserByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	session, err := s.repo.CreateSession(ctx, s.newSession(user.ID))
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.CreateSession: %w", err)
	}

	return session, nil
}

// Session returns the live session for token. Expired sessions are removed.
func (s *Auth) Session(ctx context.Context, token uuid.UUID) (domain.Session, error) {
	if token == uuid.Nil {
		return domain.Session{}, domain.ErrUnauthenticated
	}

	session, err := s.repo.GetSession(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.GetSession: %w", err)
	}

	if session.Expired(s.now()) {
		if _, err := s.repo.DeleteSession(ctx, token); err != nil {
			s.log.Warn("delete expired session", zap.Error(err))
		}
		return domain.Session{}, domain.ErrUnauthenticated
	}

	return session, nil
}

func (s *Auth) SignOut(ctx context.Context, token uuid.UUID) error {
	if token == uuid.Nil {
		return nil
	}

	if _, err := s.repo.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("repo.DeleteSession: %w", err)
	}

	return nil
}

func (s *Auth) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("repo.DeleteExpiredSessions: %w", err)
	}

	return n, nil
}

func (s *Auth) newSession(userID uuid.UUID) domain.Session {
	return domain.Session{
		Token:     uuid.New(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
}
