package domain

import "time"

// Organization is the tenancy boundary. Every asset, vendor, template and
// assessment belongs to exactly one organization.
type Organization struct {
	ID         OrganizationID
	Name       string
	InviteCode string
	CreatedAt  time.Time
}

// Role is a user's role within their organization.
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}
