package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	identitydomain "learnai/backend/internal/identity/domain"
	"learnai/backend/internal/security"
)

type fakeVerifier struct {
	id   string
	kind identitydomain.Kind
	err  error
}

func (f fakeVerifier) Verify(token string) (string, identitydomain.Kind, error) {
	if f.err != nil {
		return "", identitydomain.KindNone, f.err
	}
	return f.id, f.kind, nil
}

func okHandler(t *testing.T, wantID string, wantKind identitydomain.Kind) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := PrincipalID(r.Context())
		if !ok || id != wantID {
			t.Errorf("principal id = %q, %v", id, ok)
		}
		kind, ok := PrincipalKind(r.Context())
		if !ok || kind != wantKind {
			t.Errorf("principal kind = %q, %v", kind, ok)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthMissingToken(t *testing.T) {
	h := RequireAuth(fakeVerifier{id: "u-1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a token")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	h := RequireAuth(fakeVerifier{err: security.ErrInvalidToken})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with an invalid token")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthSetsPrincipal(t *testing.T) {
	h := RequireAuth(fakeVerifier{id: "u-1", kind: identitydomain.KindStudent})(okHandler(t, "u-1", identitydomain.KindStudent))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer some.token.here")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireKind(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RequireAuth(fakeVerifier{id: "s-1", kind: identitydomain.KindStudent})(
		RequireKind(identitydomain.KindInstructor)(inner))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestExtractBearerMalformed(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Basic abc", "bear token"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		if got := extractBearer(req); got != "" {
			t.Fatalf("extractBearer(%q) = %q, want empty", header, got)
		}
	}
}
