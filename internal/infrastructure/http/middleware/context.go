package middleware

import (
	"context"

	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	scopeContextKey contextKey = "scope"
)

// WithUser injects the authenticated user into the context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey).(*domain.User)
	return u
}

// WithScope injects the tenant scope into the context.
func WithScope(ctx context.Context, scope domain.Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey, scope)
}

// ScopeFromContext returns the tenant scope. ok is false when the user is
// authenticated but not yet in an organization.
func ScopeFromContext(ctx context.Context) (domain.Scope, bool) {
	s, ok := ctx.Value(scopeContextKey).(domain.Scope)
	return s, ok
}
