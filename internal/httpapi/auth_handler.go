package httpapi

import (
	"net/http"
	"time"

	"github.com/nikolayk812/roze-storefront/internal/domain"
)

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.auth.SignUp(r.Context(), req.Email, req.Password, req.Confirmation)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.setSessionCookie(w, session)
	writeJSON(w, http.StatusCreated, sessionResponse{UserID: session.UserID, ExpiresAt: session.ExpiresAt})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, sessionResponse{UserID: session.UserID, ExpiresAt: session.ExpiresAt})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.SignOut(r.Context(), sessionToken(r)); err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())

	writeJSON(w, http.StatusOK, sessionResponse{UserID: session.UserID, ExpiresAt: session.ExpiresAt})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, session domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token.String(),
		Path:     "/",
		Expires:  session.ExpiresAt.UTC().Truncate(time.Second),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
