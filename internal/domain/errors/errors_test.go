package errors

import "testing"

func TestSentinelErrorsDistinct(t *testing.T) {
	all := []error{
		ErrInvalidCredentials, ErrUserExists, ErrUserNotFound, ErrInvalidToken,
		ErrIdentityNotFound, ErrNotFound, ErrNoOrganization, ErrAlreadyInOrg,
		ErrInvalidInviteCode, ErrLastAdmin, ErrVendorInUse, ErrDuplicateName,
	}
	seen := make(map[string]bool, len(all))
	for _, err := range all {
		if err == nil {
			t.Fatal("sentinel error is nil")
		}
		if seen[err.Error()] {
			t.Errorf("duplicate sentinel message %q", err.Error())
		}
		seen[err.Error()] = true
	}
}
