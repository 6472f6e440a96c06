package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/roze-storefront/internal/db"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/port"
)

type accountRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewAccount(pool *pgxpool.Pool) port.AccountRepository {
	return &accountRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewAccountWithTx(tx pgx.Tx) port.AccountRepository {
	return &accountRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *accountRepository) InTx(ctx context.Context, fn func(repo port.AccountRepository) error) error {
	return inTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		return fn(&accountRepository{q: q})
	})
}

func (r *accountRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	email := normalizeEmail(user.Email)
	if email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	row, err := r.q.CreateUser(ctx, db.CreateUserParams{
		ID:           user.ID,
		Email:        email,
		PasswordHash: user.PasswordHash,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("q.CreateUser: %w", mapError(err))
	}

	return mapUserRowToDomain(row), nil
}

func (r *accountRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", mapError(err))
	}

	return mapUserRowToDomain(row), nil
}

func (r *accountRepository) CreateSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	if session.UserID == uuid.Nil {
		return domain.Session{}, fmt.Errorf("userID is empty")
	}
	if session.Token == uuid.Nil {
		session.Token = uuid.New()
	}

	row, err := r.q.CreateSession(ctx, db.CreateSessionParams{
		Token:     session.Token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("q.CreateSession: %w", mapError(err))
	}

	return mapSessionRowToDomain(row), nil
}

func (r *accountRepository) GetSession(ctx context.Context, token uuid.UUID) (domain.Session, error) {
	if token == uuid.Nil {
		return domain.Session{}, fmt.Errorf("token is empty")
	}

	row, err := r.q.GetSession(ctx, token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("q.GetSession: %w", mapError(err))
	}

	return mapSessionRowToDomain(row), nil
}

func (r *accountRepository) DeleteSession(ctx context.Context, token uuid.UUID) (bool, error) {
	if token == uuid.Nil {
		return false, fmt.Errorf("token is empty")
	}

	rowsAffected, err := r.q.DeleteSession(ctx, token)
	if err != nil {
		return false, fmt.Errorf("q.DeleteSession: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *accountRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	rowsAffected, err := r.q.DeleteExpiredSessions(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("q.DeleteExpiredSessions: %w", err)
	}

	return rowsAffected, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapUserRowToDomain(row db.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}

func mapSessionRowToDomain(row db.Session) domain.Session {
	return domain.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}
}
