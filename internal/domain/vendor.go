package domain

import "time"

// VendorStatus is the review status of a third-party vendor.
type VendorStatus string

const (
	VendorActive      VendorStatus = "Active"
	VendorUnderReview VendorStatus = "UnderReview"
	VendorOffboarded  VendorStatus = "Offboarded"
)

// Valid reports whether s is one of the known vendor statuses.
func (s VendorStatus) Valid() bool {
	switch s {
	case VendorActive, VendorUnderReview, VendorOffboarded:
		return true
	}
	return false
}

// Vendor is a third-party AI supplier. Name is unique per organization. A
// vendor with at least one referencing asset cannot be deleted.
type Vendor struct {
	ID             VendorID
	OrganizationID OrganizationID
	Name           string
	Website        string
	Status         VendorStatus
	CreatedAt      time.Time
}
