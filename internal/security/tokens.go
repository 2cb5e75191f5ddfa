package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, or fails
	// signature, issuer, or audience checks.
	ErrInvalidToken = errors.New("invalid token")
)

// PrincipalKind tags which identity collection a token subject belongs to.
type PrincipalKind string

const (
	KindInstructor PrincipalKind = "instructor"
	KindStudent    PrincipalKind = "student"
)

// SessionClaims holds JWT claims for a session token. Kind distinguishes
// instructor from student subjects.
type SessionClaims struct {
	jwt.RegisteredClaims
	Kind PrincipalKind `json:"kind"`
}

// TokenProvider issues and validates stateless session JWTs signed with a
// single process-wide HS256 secret. Tokens are self-verifying; there is no
// server-side session store and no revocation list.
type TokenProvider struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenProvider returns a TokenProvider that signs with secret.
// ttl 0 issues tokens without an exp claim. Any non-zero ttl sets exp
// relative to issuance, so a negative ttl yields tokens that never
// validate rather than tokens that never expire.
func NewTokenProvider(secret []byte, issuer, audience string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// Issue issues a session JWT for the given principal. Returns the token string
// and its expiration time (zero when the provider has no TTL).
func (p *TokenProvider) Issue(principalID string, kind PrincipalKind) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  principalID,
			Issuer:   p.issuer,
			Audience: jwt.ClaimStrings{p.audience},
			IssuedAt: jwt.NewNumericDate(now),
		},
		Kind: kind,
	}
	if p.ttl != 0 {
		expiresAt = now.Add(p.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Validate parses and validates a session token (signature, exp, iss, aud).
// Returns the principal id and kind, or ErrInvalidToken. A tampered or
// expired token never resolves to a principal.
func (p *TokenProvider) Validate(tokenString string) (principalID string, kind PrincipalKind, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}
	if claims.Issuer != p.issuer {
		return "", "", ErrInvalidToken
	}
	audOk := false
	for _, a := range claims.Audience {
		if a == p.audience {
			audOk = true
			break
		}
	}
	if !audOk {
		return "", "", ErrInvalidToken
	}
	if claims.Kind != KindInstructor && claims.Kind != KindStudent {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.Kind, nil
}
