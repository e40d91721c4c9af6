package domain

import "time"

// User is an account holder. OrganizationID is nil while the user is still
// onboarding (registered but not yet in an organization).
type User struct {
	ID             UserID
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	OrganizationID *OrganizationID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Scope is the request-scoped access context resolved from the authenticated
// user. Handlers pass it into every tenant-scoped operation; there is no
// ambient session lookup anywhere below the HTTP layer.
type Scope struct {
	UserID         UserID
	OrganizationID OrganizationID
	Role           Role
}

// IsAdmin reports whether the scope carries the ADMIN role.
func (s Scope) IsAdmin() bool { return s.Role == RoleAdmin }
