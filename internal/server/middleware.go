package server

import (
	"net/http"
	"strings"

	"learnai/backend/internal/platform/httpx"
	"learnai/backend/internal/security"

	identitydomain "learnai/backend/internal/identity/domain"
)

const bearerPrefix = "bearer "

// TokenVerifier validates a session token and returns the principal it names.
type TokenVerifier interface {
	Verify(token string) (string, identitydomain.Kind, error)
}

// RequireAuth rejects requests without a valid Bearer token and puts the
// authenticated principal on the request context. Verification failure is
// always a 401; it never falls back to an anonymous principal.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				httpx.RespondError(w, r, security.ErrInvalidToken)
				return
			}
			id, kind, err := verifier.Verify(token)
			if err != nil {
				httpx.RespondError(w, r, security.ErrInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), id, kind)))
		})
	}
}

// RequireKind rejects authenticated requests whose principal is not of the
// given kind. Must run after RequireAuth.
func RequireKind(kind identitydomain.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := PrincipalKind(r.Context())
			if !ok || got != kind {
				httpx.RespondJSON(w, http.StatusForbidden, httpx.ErrorResponse{Error: "forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractBearer returns the Bearer token from the Authorization header, or ""
// if missing or malformed.
func extractBearer(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
