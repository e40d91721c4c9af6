package domain

import "github.com/google/uuid"

// OrganizationID is a value object for tenant identity.
type OrganizationID struct{ uuid.UUID }

// NewOrganizationID creates an OrganizationID from uuid.
func NewOrganizationID(id uuid.UUID) OrganizationID { return OrganizationID{UUID: id} }

// String returns the canonical string form.
func (o OrganizationID) String() string { return o.UUID.String() }

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// AssetID is a value object for AI asset identity.
type AssetID struct{ uuid.UUID }

// NewAssetID creates an AssetID from uuid.
func NewAssetID(id uuid.UUID) AssetID { return AssetID{UUID: id} }

// String returns the canonical string form.
func (a AssetID) String() string { return a.UUID.String() }

// VendorID is a value object for vendor identity.
type VendorID struct{ uuid.UUID }

// NewVendorID creates a VendorID from uuid.
func NewVendorID(id uuid.UUID) VendorID { return VendorID{UUID: id} }

// String returns the canonical string form.
func (v VendorID) String() string { return v.UUID.String() }

// TemplateID is a value object for assessment template identity.
type TemplateID struct{ uuid.UUID }

// NewTemplateID creates a TemplateID from uuid.
func NewTemplateID(id uuid.UUID) TemplateID { return TemplateID{UUID: id} }

// String returns the canonical string form.
func (t TemplateID) String() string { return t.UUID.String() }

// AssessmentID is a value object for assessment identity.
type AssessmentID struct{ uuid.UUID }

// NewAssessmentID creates an AssessmentID from uuid.
func NewAssessmentID(id uuid.UUID) AssessmentID { return AssessmentID{UUID: id} }

// String returns the canonical string form.
func (a AssessmentID) String() string { return a.UUID.String() }
