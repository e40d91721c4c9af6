package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

// AuthValidator validates the bearer token and loads the user fresh from the
// repository, so a revoked membership or changed role applies to the very
// next request. When the user belongs to an organization the tenant scope is
// set alongside the user.
type AuthValidator struct {
	issuer ports.TokenIssuer
	users  ports.UserRepository
}

func NewAuthValidator(issuer ports.TokenIssuer, users ports.UserRepository) *AuthValidator {
	return &AuthValidator{issuer: issuer, users: users}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeErr(w, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization")
			return
		}
		userIDStr, err := m.issuer.ValidateAccessToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		user, err := m.users.GetByID(r.Context(), domain.NewUserID(userID))
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		if user == nil {
			writeErr(w, http.StatusUnauthorized, "unauthorized", "unknown user")
			return
		}
		ctx := WithUser(r.Context(), user)
		if user.OrganizationID != nil {
			ctx = WithScope(ctx, domain.Scope{
				UserID:         user.ID,
				OrganizationID: *user.OrganizationID,
				Role:           user.Role,
			})
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOrganization rejects requests from users who have not joined an
// organization yet. Use after AuthValidator.
func RequireOrganization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ScopeFromContext(r.Context()); !ok {
			writeErr(w, http.StatusForbidden, "forbidden", "user must belong to an organization")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects non-admin members. Use after RequireOrganization.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, ok := ScopeFromContext(r.Context())
		if !ok || !scope.IsAdmin() {
			writeErr(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeErr(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}
