// Package handler exposes signup, login, and logout over HTTP.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"learnai/backend/internal/events"
	identitydomain "learnai/backend/internal/identity/domain"
	"learnai/backend/internal/identity/service"
	"learnai/backend/internal/platform/httpx"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewAuthHandler returns an AuthHandler. emitter may be nil.
func NewAuthHandler(auth *service.AuthService, emitter events.EventEmitter, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{auth: auth, emitter: emitter, logger: logger}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /signup. Creates an instructor account.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	inst, err := h.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	ev := events.New(events.TypeSignup)
	ev.PrincipalID = inst.ID
	ev.Email = inst.Email
	events.EmitAsync(h.emitter, ev)

	httpx.RespondJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string     `json:"token"`
	Student   bool       `json:"student"`
	UserData  *userData  `json:"userData,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type userData struct {
	FullName string `json:"fullName"`
}

// Login handles POST /login. An unknown email is 404; a bad password on a
// known email is 401. The student flag and userData shape the client UI per
// principal kind.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: err.Error()})
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	resp := loginResponse{Token: res.Token}
	if !res.ExpiresAt.IsZero() {
		exp := res.ExpiresAt
		resp.ExpiresAt = &exp
	}
	if res.Principal.Kind == identitydomain.KindStudent {
		resp.Student = true
		resp.UserData = &userData{FullName: res.Principal.Student.FullName}
	}

	ev := events.New(events.TypeLogin)
	ev.PrincipalID = res.Principal.ID()
	ev.Email = req.Email
	events.EmitAsync(h.emitter, ev)

	httpx.RespondJSON(w, http.StatusOK, resp)
}

// Logout handles POST /logout. Tokens are stateless and carry no server-side
// session, so a verified logout only tells the client to discard the token.
// The auth middleware already rejected anything unverifiable with 401.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
