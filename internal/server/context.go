package server

import (
	"context"

	identitydomain "learnai/backend/internal/identity/domain"
)

type contextKey struct{ name string }

var (
	principalIDKey   = contextKey{"principal_id"}
	principalKindKey = contextKey{"principal_kind"}
)

// WithPrincipal returns a context carrying the authenticated principal id and
// kind. Handlers read these via PrincipalID and PrincipalKind.
func WithPrincipal(ctx context.Context, id string, kind identitydomain.Kind) context.Context {
	ctx = context.WithValue(ctx, principalIDKey, id)
	ctx = context.WithValue(ctx, principalKindKey, kind)
	return ctx
}

// PrincipalID returns the principal id from context and true if set.
func PrincipalID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(principalIDKey).(string)
	return v, ok
}

// PrincipalKind returns the principal kind from context and true if set.
func PrincipalKind(ctx context.Context) (identitydomain.Kind, bool) {
	v, ok := ctx.Value(principalKindKey).(identitydomain.Kind)
	return v, ok
}
