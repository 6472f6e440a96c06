package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	c := f.client
	p := seedProduct(t, f, "Malbec", "1234.5", "100ml", "")

	rec := c.json(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	c.signUp()

	// no profile and no cart: the empty cart is reported first
	rec = c.json(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty_cart", decode[errorResponse](t, rec).Error)

	c.json(http.MethodPost, "/api/cart/items", addToCartRequest{ID: p.ID})
	c.json(http.MethodPost, "/api/cart/items", addToCartRequest{ID: p.ID})

	rec = c.json(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "profile_incomplete", decode[errorResponse](t, rec).Error)

	rec = c.json(http.MethodPost, "/api/profile", profileBody{
		FullName: "Maria Souza",
		Phone:    "89 99999-0000",
		Street:   "Rua A",
		Number:   "10",
		District: "Centro",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = c.json(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[checkoutResponse](t, rec)
	assert.Contains(t, got.Message, "Nome: Maria Souza\n")
	assert.Contains(t, got.Message, "Endereço: Rua A, 10 - Centro, Picos\n")
	assert.Contains(t, got.Message, "• 2x Malbec (100ml) - R$ 2.469,00\n")
	assert.Contains(t, got.Message, "Total: R$ 2.469,00\n")
	assert.NotContains(t, got.Message, "Complemento:")

	prefix := "https://wa.me/" + storePhone + "?text="
	require.True(t, strings.HasPrefix(got.URL, prefix), got.URL)
	assert.NotContains(t, got.URL, "+")

	text, err := url.PathUnescape(strings.TrimPrefix(got.URL, prefix))
	require.NoError(t, err)
	assert.Equal(t, got.Message, text)

	rec = c.json(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 2, decode[cartResponse](t, rec).ItemCount)
}

func TestCheckout_IncompleteProfile(t *testing.T) {
	f := newFixture(t)
	c := f.client
	p := seedProduct(t, f, "Malbec", "10", "100ml", "")

	c.signUp()
	c.json(http.MethodPost, "/api/cart/items", addToCartRequest{ID: p.ID})

	rec := c.json(http.MethodPost, "/api/profile", profileBody{FullName: "Maria Souza"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.json(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "profile_incomplete", decode[errorResponse](t, rec).Error)
}
