package httpapi

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartResponse(s.carts.Get(cartKey(r))))
}

// handleAddToCart snapshots the catalog product into the visitor's cart,
// issuing the cart cookie on first use.
func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.ID == uuid.Nil {
		s.writeError(w, r, fmt.Errorf("%w: product id is empty", domain.ErrInvalidInput))
		return
	}

	product, err := s.catalog.GetProduct(r.Context(), req.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key := cartKey(r)
	if key == "" {
		key = s.issueCartCookie(w)
	}

	snap := s.carts.Update(key, func(c *domain.Cart) {
		c.Add(product)
	})

	writeJSON(w, http.StatusOK, toCartResponse(snap))
}

func (s *Server) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req setQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	key := cartKey(r)
	if key == "" {
		writeJSON(w, http.StatusOK, toCartResponse(s.carts.Get(key)))
		return
	}

	snap := s.carts.Update(key, func(c *domain.Cart) {
		c.SetQuantity(id, req.Quantity)
	})

	writeJSON(w, http.StatusOK, toCartResponse(snap))
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key := cartKey(r)
	if key == "" {
		writeJSON(w, http.StatusOK, toCartResponse(s.carts.Get(key)))
		return
	}

	snap := s.carts.Update(key, func(c *domain.Cart) {
		c.Remove(id)
	})

	writeJSON(w, http.StatusOK, toCartResponse(snap))
}

// cartKey returns the visitor's cart key, or "" when the request carries no
// valid cart cookie.
func cartKey(r *http.Request) string {
	c, err := r.Cookie(cartCookie)
	if err != nil {
		return ""
	}

	key, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}

	return key.String()
}

func (s *Server) issueCartCookie(w http.ResponseWriter) string {
	key := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     cartCookie,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	return key
}
