// Package cart keeps the in-memory carts of active visitors. Carts are never
// persisted: a restart or an idle timeout starts the visitor over with an
// empty cart.
package cart

import (
	"sync"
	"time"

	"github.com/nikolayk812/roze-storefront/internal/domain"
	"golang.org/x/text/currency"
)

const sweepInterval = time.Minute

type Snapshot struct {
	Lines  []domain.CartLine
	Totals domain.CartTotals
}

type entry struct {
	cart      *domain.Cart
	touchedAt time.Time
}

// Registry maps a visitor key to its cart and serialises every access, so
// each cart has a single owner at a time.
type Registry struct {
	mu        sync.Mutex
	carts     map[string]*entry
	currency  currency.Unit
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func NewRegistry(cur currency.Unit, idleTTL time.Duration, opts ...Option) *Registry {
	r := &Registry{
		carts:    make(map[string]*entry),
		currency: cur,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lastSweep = r.now()

	return r
}

// Update runs fn against the visitor's cart, creating an empty one on first
// use, and returns the resulting state.
func (r *Registry) Update(key string, fn func(c *domain.Cart)) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	e, ok := r.carts[key]
	if !ok {
		e = &entry{cart: domain.NewCart(r.currency)}
		r.carts[key] = e
	}
	e.touchedAt = now

	fn(e.cart)

	return snapshotOf(e.cart)
}

// Get returns the visitor's cart state; an unknown key reads as empty.
func (r *Registry) Get(key string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	e, ok := r.carts[key]
	if !ok {
		return snapshotOf(domain.NewCart(r.currency))
	}
	e.touchedAt = now

	return snapshotOf(e.cart)
}

func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, key)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.carts)
}

func (r *Registry) sweepLocked(now time.Time) {
	if r.idleTTL <= 0 || now.Sub(r.lastSweep) < sweepInterval {
		return
	}
	r.lastSweep = now

	for key, e := range r.carts {
		if now.Sub(e.touchedAt) >= r.idleTTL {
			delete(r.carts, key)
		}
	}
}

func snapshotOf(c *domain.Cart) Snapshot {
	return Snapshot{
		Lines:  c.Lines(),
		Totals: c.Totals(),
	}
}
