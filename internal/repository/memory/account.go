package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/port"
)

type Accounts struct {
	mu       sync.Mutex
	users    map[uuid.UUID]domain.User
	sessions map[uuid.UUID]domain.Session
}

var _ port.AccountRepository = (*Accounts)(nil)

func NewAccounts() *Accounts {
	return &Accounts{
		users:    make(map[uuid.UUID]domain.User),
		sessions: make(map[uuid.UUID]domain.Session),
	}
}

func (a *Accounts) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.createUserLocked(user)
}

func (a *Accounts) createUserLocked(user domain.User) (domain.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}
	for _, u := range a.users {
		if u.Email == user.Email {
			return domain.User{}, fmt.Errorf("user[%s]: %w", user.Email, domain.ErrAlreadyExists)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	a.users[user.ID] = user

	return user, nil
}

func (a *Accounts) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}
	for _, u := range a.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, fmt.Errorf("user[%s]: %w", email, domain.ErrNotFound)
}

func (a *Accounts) CreateSession(_ context.Context, session domain.Session) (domain.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.createSessionLocked(session)
}

func (a *Accounts) createSessionLocked(session domain.Session) (domain.Session, error) {
	if session.UserID == uuid.Nil {
		return domain.Session{}, fmt.Errorf("userID is empty")
	}
	if _, ok := a.users[session.UserID]; !ok {
		return domain.Session{}, fmt.Errorf("user[%s]: %w", session.UserID, domain.ErrNotFound)
	}
	if session.Token == uuid.Nil {
		session.Token = uuid.New()
	}
	session.CreatedAt = time.Now()
	a.sessions[session.Token] = session

	return session, nil
}

func (a *Accounts) GetSession(_ context.Context, token uuid.UUID) (domain.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[token]
	if !ok {
		return domain.Session{}, fmt.Errorf("session: %w", domain.ErrNotFound)
	}

	return s, nil
}

func (a *Accounts) DeleteSession(_ context.Context, token uuid.UUID) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.sessions[token]; !ok {
		return false, nil
	}
	delete(a.sessions, token)

	return true, nil
}

func (a *Accounts) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var n int64
	for token, s := range a.sessions {
		if s.Expired(now) {
			delete(a.sessions, token)
			n++
		}
	}

	return n, nil
}

// InTx runs fn while holding the lock; writes made before a failure are
// undone.
func (a *Accounts) InTx(_ context.Context, fn func(repo port.AccountRepository) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx := &accountsTx{
		parent:   a,
		users:    make(map[uuid.UUID]struct{}),
		sessions: make(map[uuid.UUID]struct{}),
	}
	if err := fn(tx); err != nil {
		for id := range tx.users {
			delete(a.users, id)
		}
		for token := range tx.sessions {
			delete(a.sessions, token)
		}
		return err
	}

	return nil
}

// accountsTx is used while Accounts.mu is held; it records what it created.
type accountsTx struct {
	parent   *Accounts
	users    map[uuid.UUID]struct{}
	sessions map[uuid.UUID]struct{}
}

func (t *accountsTx) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	created, err := t.parent.createUserLocked(user)
	if err != nil {
		return domain.User{}, err
	}
	t.users[created.ID] = struct{}{}
	return created, nil
}

func (t *accountsTx) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range t.parent.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user[%s]: %w", email, domain.ErrNotFound)
}

func (t *accountsTx) CreateSession(_ context.Context, session domain.Session) (domain.Session, error) {
	created, err := t.parent.createSessionLocked(session)
	if err != nil {
		return domain.Session{}, err
	}
	t.sessions[created.Token] = struct{}{}
	return created, nil
}

func (t *accountsTx) GetSession(_ context.Context, token uuid.UUID) (domain.Session, error) {
	s, ok := t.parent.sessions[token]
	if !ok {
		return domain.Session{}, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	return s, nil
}

func (t *accountsTx) DeleteSession(_ context.Context, token uuid.UUID) (bool, error) {
	if _, ok := t.parent.sessions[token]; !ok {
		return false, nil
	}
	delete(t.parent.sessions, token)
	return true, nil
}

func (t *accountsTx) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for token, s := range t.parent.sessions {
		if s.Expired(now) {
			delete(t.parent.sessions, token)
			n++
		}
	}
	return n, nil
}

func (t *accountsTx) InTx(_ context.Context, fn func(repo port.AccountRepository) error) error {
	return fn(t)
}

type Profiles struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]domain.Profile
}

var _ port.ProfileRepository = (*Profiles)(nil)

func NewProfiles() *Profiles {
	return &Profiles{
		profiles: make(map[uuid.UUID]domain.Profile),
	}
}

func (p *Profiles) GetProfile(_ context.Context, userID uuid.UUID) (domain.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	profile, ok := p.profiles[userID]
	if !ok {
		return domain.Profile{}, fmt.Errorf("profile[%s]: %w", userID, domain.ErrNotFound)
	}

	return profile, nil
}

func (p *Profiles) CreateProfile(_ context.Context, profile domain.Profile) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if profile.UserID == uuid.Nil {
		return fmt.Errorf("userID is empty")
	}
	if _, ok := p.profiles[profile.UserID]; ok {
		return fmt.Errorf("profile[%s]: %w", profile.UserID, domain.ErrAlreadyExists)
	}
	profile.City = profile.CityOrDefault()
	profile.UpdatedAt = time.Now()
	p.profiles[profile.UserID] = profile

	return nil
}

func (p *Profiles) UpdateProfile(_ context.Context, profile domain.Profile) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if profile.UserID == uuid.Nil {
		return false, fmt.Errorf("userID is empty")
	}
	if _, ok := p.profiles[profile.UserID]; !ok {
		return false, nil
	}
	profile.City = profile.CityOrDefault()
	profile.UpdatedAt = time.Now()
	p.profiles[profile.UserID] = profile

	return true, nil
}
