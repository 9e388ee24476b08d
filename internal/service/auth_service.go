package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rachaconta/backend/internal/auth"
)

// AuthService exchanges the server password for a session token used to
// change the stored credential.
type AuthService struct {
	gate *auth.PasswordGate
	jwt  *auth.JWTManager
}

// NewAuthService creates a new AuthService. gate may be nil when no password
// is configured; login then always fails with 404-like absence semantics.
func NewAuthService(gate *auth.PasswordGate, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{gate: gate, jwt: jwtManager}
}

// Register mounts the login endpoint on mux.
func (s *AuthService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *AuthService) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.gate == nil {
		writeError(w, http.StatusNotFound, "not_configured", "password protection is not configured")
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.gate.Verify(req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			slog.Warn("Login rejected", "remote_addr", r.RemoteAddr)
			writeError(w, http.StatusUnauthorized, "invalid_password", "invalid password")
			return
		}
		slog.Error("Login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}

	token, err := s.jwt.Generate()
	if err != nil {
		slog.Error("Token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
