package service

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rachaconta/backend/internal/auth"
	"github.com/rachaconta/backend/internal/middleware"
	"github.com/rachaconta/backend/internal/storage"
)

// CredentialService manages the single stored AI API key. The plaintext is
// never returned; GET reports presence only.
type CredentialService struct {
	store storage.Store
	jwt   *auth.JWTManager
}

// NewCredentialService creates a new CredentialService. jwtManager may be
// nil, leaving writes unprotected (no password configured).
func NewCredentialService(store storage.Store, jwtManager *auth.JWTManager) *CredentialService {
	return &CredentialService{store: store, jwt: jwtManager}
}

// Register mounts the credential endpoints on mux. Writes require a session
// token when protection is configured.
func (s *CredentialService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/credential", s.handleGet)
	mux.Handle("PUT /api/v1/credential", middleware.RequireToken(s.jwt, http.HandlerFunc(s.handlePut)))
	mux.Handle("DELETE /api/v1/credential", middleware.RequireToken(s.jwt, http.HandlerFunc(s.handleDelete)))
}

func (s *CredentialService) handleGet(w http.ResponseWriter, r *http.Request) {
	value, err := s.store.GetCredential(r.Context())
	if err != nil {
		slog.Error("GetCredential failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to read credential")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"configured": value != ""})
}

type credentialRequest struct {
	APIKey string `json:"apiKey"`
}

func (s *CredentialService) handlePut(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "apiKey must not be empty")
		return
	}

	if err := s.store.SetCredential(r.Context(), strings.TrimSpace(req.APIKey)); err != nil {
		slog.Error("SetCredential failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to store credential")
		return
	}
	slog.Info("Credential saved")
	writeJSON(w, http.StatusOK, map[string]bool{"configured": true})
}

func (s *CredentialService) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCredential(r.Context()); err != nil {
		slog.Error("DeleteCredential failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to delete credential")
		return
	}
	slog.Info("Credential deleted")
	writeJSON(w, http.StatusOK, map[string]bool{"configured": false})
}
