package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rachaconta/backend/internal/auth"
)

// RequireToken wraps next with bearer-token validation. When jwtManager is
// nil the server runs unprotected (no password configured) and next is
// returned unchanged.
func RequireToken(jwtManager *auth.JWTManager, next http.Handler) http.Handler {
	if jwtManager == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
			return
		}
		if _, err := jwtManager.Validate(token); err != nil {
			slog.Warn("Rejected token", "path", r.URL.Path, "error", err)
			http.Error(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
