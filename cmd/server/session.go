package main

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := s.auth.ValidateCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Error("failed to validate credentials", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "authentication error")
		return
	}
	if !valid {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	s.auth.SetCookie(w, strings.ToLower(strings.TrimSpace(req.Email)), s.secureCookies)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
