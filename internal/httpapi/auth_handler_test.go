package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_SignUpSessionSignOut(t *testing.T) {
	f := newFixture(t)
	c := f.client

	rec := c.json(http.MethodPost, "/api/auth/signup", signUpRequest{
		Email:        "Cliente@Roze.com",
		Password:     "segredo1",
		Confirmation: "segredo1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Contains(t, c.cookies, sessionCookie)

	created := decode[sessionResponse](t, rec)

	rec = c.json(http.MethodGet, "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.UserID, decode[sessionResponse](t, rec).UserID)

	rec = c.json(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, c.cookies, sessionCookie)

	rec = c.json(http.MethodGet, "/api/auth/session", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", decode[errorResponse](t, rec).Error)

	rec = c.json(http.MethodPost, "/api/auth/login", signInRequest{Email: "cliente@roze.com", Password: "segredo1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, created.UserID, decode[sessionResponse](t, rec).UserID)
}

func TestAuth_Errors(t *testing.T) {
	f := newFixture(t)
	c := f.client

	rec := c.json(http.MethodPost, "/api/auth/signup", signUpRequest{Email: "a@b.com", Password: "segredo1", Confirmation: "segredo1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "passwords differ",
			path:       "/api/auth/signup",
			body:       signUpRequest{Email: "x@y.com", Password: "segredo1", Confirmation: "segredo2"},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_input",
		},
		{
			name:       "short password",
			path:       "/api/auth/signup",
			body:       signUpRequest{Email: "x@y.com", Password: "abc", Confirmation: "abc"},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_input",
		},
		{
			name:       "duplicate email",
			path:       "/api/auth/signup",
			body:       signUpRequest{Email: "A@B.com", Password: "segredo1", Confirmation: "segredo1"},
			wantStatus: http.StatusConflict,
			wantError:  "already_exists",
		},
		{
			name:       "wrong password",
			path:       "/api/auth/login",
			body:       signInRequest{Email: "a@b.com", Password: "errada00"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid_credentials",
		},
		{
			name:       "empty email",
			path:       "/api/auth/login",
			body:       signInRequest{Email: "", Password: "segredo1"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid_credentials",
		},
		{
			name:       "blank email",
			path:       "/api/auth/login",
			body:       signInRequest{Email: "   ", Password: "segredo1"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid_credentials",
		},
		{
			name:       "unknown email",
			path:       "/api/auth/login",
			body:       signInRequest{Email: "nobody@b.com", Password: "segredo1"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid_credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newAPIClient(t, c.handler).json(http.MethodPost, tt.path, tt.body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantError, decode[errorResponse](t, rec).Error)
		})
	}
}

func TestAuth_MalformedBody(t *testing.T) {
	f := newFixture(t)

	rec := f.client.raw(http.MethodPost, "/api/auth/login", "application/json", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", decode[errorResponse](t, rec).Error)
}
