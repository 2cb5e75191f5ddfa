package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	identitydomain "learnai/backend/internal/identity/domain"
	instructordomain "learnai/backend/internal/instructor/domain"
	"learnai/backend/internal/security"
)

// Sentinel errors for the auth service; handlers map them to HTTP statuses.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrPrincipalNotFound      = errors.New("no principal for email")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// LoginResult holds the outcome of a successful Login: a session token plus
// what the caller needs to shape the response for each principal kind.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal identitydomain.Principal
}

// AuthService implements signup, login, and token verification over the two
// identity collections. Logout is fail-open at the authority: the HTTP layer
// verifies the token is well-formed and the client discards it; no server-side
// revocation exists.
type AuthService struct {
	resolver *Resolver
	hasher   *security.Hasher
	tokens   *security.TokenProvider
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(resolver *Resolver, hasher *security.Hasher, tokens *security.TokenProvider) *AuthService {
	return &AuthService{resolver: resolver, hasher: hasher, tokens: tokens}
}

// Signup creates an instructor with the given email and password. The email
// must not name any existing principal of either kind.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*instructordomain.Instructor, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	existing, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing.Kind != identitydomain.KindNone {
		return nil, ErrEmailAlreadyRegistered
	}
	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	inst := &instructordomain.Instructor{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolver.instructors.Create(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// Login resolves email across both collections and verifies the password.
// Returns ErrPrincipalNotFound when no principal owns the email and
// ErrInvalidCredentials when the password does not match; the two outcomes are
// deliberately distinct (404 vs 401 at the HTTP layer).
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = NormalizeEmail(email)
	principal, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	if principal.Kind == identitydomain.KindNone {
		return nil, ErrPrincipalNotFound
	}
	if err := s.hasher.Compare(principal.PasswordHash(), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, expiresAt, err := s.tokens.Issue(principal.ID(), tokenKind(principal.Kind))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Principal: principal}, nil
}

// Verify decodes a session token and returns the principal id and kind.
// Any malformed, expired, or tampered token yields security.ErrInvalidToken;
// a failure never resolves to a guest principal.
func (s *AuthService) Verify(token string) (string, identitydomain.Kind, error) {
	id, kind, err := s.tokens.Validate(token)
	if err != nil {
		return "", identitydomain.KindNone, err
	}
	return id, principalKind(kind), nil
}

func tokenKind(k identitydomain.Kind) security.PrincipalKind {
	if k == identitydomain.KindStudent {
		return security.KindStudent
	}
	return security.KindInstructor
}

func principalKind(k security.PrincipalKind) identitydomain.Kind {
	if k == security.KindStudent {
		return identitydomain.KindStudent
	}
	return identitydomain.KindInstructor
}

// NormalizeEmail lowercases and trims an email for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

var simpleEmail = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email shape. Rejection happens before any
// persistence attempt.
func ValidateEmail(email string) error {
	if email == "" || !simpleEmail.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
