package ports

import (
	"context"
	"time"

	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

// Repositories return (nil, nil) for rows that do not exist or that fall
// outside the given organization; callers decide how absence surfaces. Every
// tenant-owned entity takes the organization id as an explicit parameter so a
// cross-tenant read is impossible to express.

// OrganizationRepository defines persistence for organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, orgID domain.OrganizationID) (*domain.Organization, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (*domain.Organization, error)
}

// UserRepository defines persistence for users. Emails are unique globally;
// organization membership is a nullable pointer on the user row.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByOrganization(ctx context.Context, orgID domain.OrganizationID) ([]*domain.User, error)
	ListAdmins(ctx context.Context, orgID domain.OrganizationID) ([]*domain.User, error)
	CountAdmins(ctx context.Context, orgID domain.OrganizationID) (int, error)
	UpdateRole(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID, role domain.Role) error
	SetOrganization(ctx context.Context, userID domain.UserID, orgID *domain.OrganizationID, role domain.Role) error
}

// AssetRepository defines persistence for AI assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID) (*domain.Asset, error)
	List(ctx context.Context, orgID domain.OrganizationID) ([]*domain.Asset, error)
	Update(ctx context.Context, asset *domain.Asset) error
	UpdateRiskClassification(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID, level domain.RiskLevel) error
	Delete(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID) error
	// CreateDiscovered inserts discovered assets, skipping any whose
	// discovered id already exists in the organization. Returns the number
	// of rows actually inserted.
	CreateDiscovered(ctx context.Context, assets []*domain.Asset) (int, error)
	CountByVendor(ctx context.Context, orgID domain.OrganizationID, vendorID domain.VendorID) (int, error)
	CountByRisk(ctx context.Context, orgID domain.OrganizationID) (map[domain.RiskLevel]int, error)
	CountByStatus(ctx context.Context, orgID domain.OrganizationID) (map[domain.AssetStatus]int, error)
}

// VendorRepository defines persistence for vendors.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, orgID domain.OrganizationID, vendorID domain.VendorID) (*domain.Vendor, error)
	List(ctx context.Context, orgID domain.OrganizationID) ([]*domain.Vendor, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
	Delete(ctx context.Context, orgID domain.OrganizationID, vendorID domain.VendorID) error
}

// TemplateRepository defines persistence for assessment templates.
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.AssessmentTemplate) error
	GetByID(ctx context.Context, orgID domain.OrganizationID, templateID domain.TemplateID) (*domain.AssessmentTemplate, error)
	List(ctx context.Context, orgID domain.OrganizationID) ([]*domain.AssessmentTemplate, error)
	Update(ctx context.Context, tmpl *domain.AssessmentTemplate) error
	Delete(ctx context.Context, orgID domain.OrganizationID, templateID domain.TemplateID) error
}

// AssessmentRepository defines persistence for assessments. Scoping joins
// through the owning asset: an assessment is visible only when its asset
// belongs to the given organization.
type AssessmentRepository interface {
	Create(ctx context.Context, a *domain.Assessment) error
	GetByID(ctx context.Context, orgID domain.OrganizationID, assessmentID domain.AssessmentID) (*domain.Assessment, error)
	ListByAsset(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID) ([]*domain.Assessment, error)
	Update(ctx context.Context, a *domain.Assessment) error
	CountByStatus(ctx context.Context, orgID domain.OrganizationID) (map[domain.AssessmentStatus]int, error)
}

// AuditLogRepository defines the append-only audit trail. There is no update
// or delete.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByAsset(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID) ([]*domain.AuditLogEntry, error)
}

// NotificationRepository defines persistence for user notifications.
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []*domain.Notification) error
	ListUnread(ctx context.Context, userID domain.UserID, limit int) ([]*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID domain.UserID) error
}

// RefreshTokenInfo is the stored state of a refresh token.
type RefreshTokenInfo struct {
	UserID    domain.UserID
	ExpiresAt time.Time
}

// TokenStore defines storage for rotating refresh tokens.
type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshTokenInfo, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
}

// IdentityStore links OAuth provider identities to users.
type IdentityStore interface {
	GetUserIDByProvider(ctx context.Context, provider, providerUserID string) (domain.UserID, error)
	Create(ctx context.Context, userID domain.UserID, provider, providerUserID string) error
}
