package repository_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/port"
	"github.com/nikolayk812/roze-storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type accountRepositorySuite struct {
	suite.Suite

	accounts  port.AccountRepository
	profiles  port.ProfileRepository
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

// entry point to run the tests in the suite
func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(accountRepositorySuite))
}

// before all tests in the suite
func (suite *accountRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.accounts = repository.NewAccount(suite.pool)
	suite.profiles = repository.NewProfile(suite.pool)
}

// after all tests in the suite
func (suite *accountRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		if err := testcontainers.TerminateContainer(suite.container); err != nil {
			suite.T().Logf("terminate postgres container: %v", err)
		}
	}
}

func (suite *accountRepositorySuite) TestCreateUser() {
	defer suite.deleteAll()

	existingEmail := strings.ToLower(gofakeit.Email())

	tests := []struct {
		name      string
		user      domain.User
		wantEmail string
		wantErr   error
		wantError string
	}{
		{
			name:      "create user: ok",
			user:      domain.User{Email: existingEmail, PasswordHash: "hash"},
			wantEmail: existingEmail,
		},
		{
			name:      "email is normalised",
			user:      domain.User{Email: "  Ana.Souza@Example.COM ", PasswordHash: "hash"},
			wantEmail: "ana.souza@example.com",
		},
		{
			name:    "duplicate email: already exists",
			user:    domain.User{Email: existingEmail, PasswordHash: "other"},
			wantErr: domain.ErrAlreadyExists,
		},
		{
			name:      "empty email: error",
			user:      domain.User{PasswordHash: "hash"},
			wantError: "email is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			created, err := suite.accounts.CreateUser(ctx, tt.user)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, created.ID)
			assert.Equal(t, tt.wantEmail, created.Email)
			assert.False(t, created.CreatedAt.IsZero())

			fetched, err := suite.accounts.GetUserByEmail(ctx, tt.user.Email)
			require.NoError(t, err)
			assert.Equal(t, created, fetched)
		})
	}
}

func (suite *accountRepositorySuite) TestGetUserByEmailNotFound() {
	t := suite.T()

	_, err := suite.accounts.GetUserByEmail(t.Context(), gofakeit.Email())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *accountRepositorySuite) TestSessions() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	expiresAt := time.Now().Add(time.Hour).UTC()

	session, err := suite.accounts.CreateSession(ctx, domain.Session{UserID: user.ID, ExpiresAt: expiresAt})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, session.Token)
	assert.Equal(t, user.ID, session.UserID)
	assert.WithinDuration(t, expiresAt, session.ExpiresAt, time.Millisecond)

	fetched, err := suite.accounts.GetSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Token, fetched.Token)
	assert.WithinDuration(t, session.ExpiresAt, fetched.ExpiresAt, 0)

	deleted, err := suite.accounts.DeleteSession(ctx, session.Token)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = suite.accounts.DeleteSession(ctx, session.Token)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = suite.accounts.GetSession(ctx, session.Token)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.accounts.CreateSession(ctx, domain.Session{UserID: uuid.Nil})
	require.EqualError(t, err, "userID is empty")
}

func (suite *accountRepositorySuite) TestDeleteExpiredSessions() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	now := time.Now()

	expired, err := suite.accounts.CreateSession(ctx, domain.Session{UserID: user.ID, ExpiresAt: now.Add(-time.Minute)})
	require.NoError(t, err)
	live, err := suite.accounts.CreateSession(ctx, domain.Session{UserID: user.ID, ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	n, err := suite.accounts.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = suite.accounts.GetSession(ctx, expired.Token)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = suite.accounts.GetSession(ctx, live.Token)
	require.NoError(t, err)
}

func (suite *accountRepositorySuite) TestInTxRollsBackUser() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	email := gofakeit.Email()

	err := suite.accounts.InTx(ctx, func(repo port.AccountRepository) error {
		if _, err := repo.CreateUser(ctx, domain.User{Email: email, PasswordHash: "hash"}); err != nil {
			return err
		}
		// no user with this id: foreign key violation aborts the transaction
		_, err := repo.CreateSession(ctx, domain.Session{UserID: uuid.New(), ExpiresAt: time.Now()})
		return err
	})
	require.Error(t, err)

	_, err = suite.accounts.GetUserByEmail(ctx, email)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *accountRepositorySuite) TestProfiles() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()

	_, err := suite.profiles.GetProfile(ctx, user.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := suite.profiles.UpdateProfile(ctx, domain.Profile{UserID: user.ID, FullName: "x"})
	require.NoError(t, err)
	assert.False(t, updated)

	profile := domain.Profile{
		UserID:   user.ID,
		FullName: gofakeit.Name(),
		Phone:    gofakeit.Phone(),
		Street:   gofakeit.Street(),
		Number:   gofakeit.StreetNumber(),
		District: gofakeit.City(),
	}
	require.NoError(t, suite.profiles.CreateProfile(ctx, profile))

	err = suite.profiles.CreateProfile(ctx, profile)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	fetched, err := suite.profiles.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.FullName, fetched.FullName)
	assert.Equal(t, profile.Phone, fetched.Phone)
	assert.Equal(t, profile.Street, fetched.Street)
	assert.Equal(t, profile.Number, fetched.Number)
	assert.Equal(t, profile.District, fetched.District)
	assert.Empty(t, fetched.Complement)
	assert.Equal(t, domain.DefaultCity, fetched.City)

	profile.Complement = "Apto 12"
	profile.City = "Teresina"
	updated, err = suite.profiles.UpdateProfile(ctx, profile)
	require.NoError(t, err)
	assert.True(t, updated)

	fetched, err = suite.profiles.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apto 12", fetched.Complement)
	assert.Equal(t, "Teresina", fetched.City)
}

func (suite *accountRepositorySuite) createUser() domain.User {
	user, err := suite.accounts.CreateUser(suite.T().Context(), domain.User{
		Email:        gofakeit.Email(),
		PasswordHash: "hash",
	})
	suite.Require().NoError(err)
	return user
}

func (suite *accountRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(context.Background(), "TRUNCATE TABLE users, sessions, profiles CASCADE")
	suite.NoError(err)
}
