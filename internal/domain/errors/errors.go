// Package errors holds the sentinel errors handlers map to HTTP statuses.
package errors

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("a user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrIdentityNotFound   = errors.New("oauth identity not found")

	// ErrNotFound covers both a genuinely absent resource and a resource
	// outside the caller's organization; the two are intentionally
	// indistinguishable to the caller.
	ErrNotFound = errors.New("resource not found")

	ErrNoOrganization    = errors.New("user does not belong to an organization")
	ErrAlreadyInOrg      = errors.New("user is already in an organization")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrLastAdmin         = errors.New("cannot demote the last admin")
	ErrVendorInUse       = errors.New("vendor has associated assets and cannot be deleted")
	ErrDuplicateName     = errors.New("a record with this name already exists")
)
