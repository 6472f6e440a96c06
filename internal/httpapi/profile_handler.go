package httpapi

import (
	"fmt"
	"net/http"

	"github.com/nikolayk812/roze-storefront/internal/domain"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())

	profile, found, err := s.profiles.Get(r.Context(), session.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		s.writeError(w, r, fmt.Errorf("profile: %w", domain.ErrNotFound))
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())

	var req profileBody
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := s.profiles.Create(r.Context(), req.toDomain(session.UserID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProfileResponse(profile))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())

	var req profileBody
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := s.profiles.Update(r.Context(), req.toDomain(session.UserID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}
