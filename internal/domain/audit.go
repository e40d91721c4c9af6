package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActionType enumerates governance-relevant mutations recorded in the audit trail.
type ActionType string

const (
	ActionAssetCreated           ActionType = "ASSET_CREATED"
	ActionAssetUpdated           ActionType = "ASSET_UPDATED"
	ActionAssetDeleted           ActionType = "ASSET_DELETED"
	ActionAssessmentUpdated      ActionType = "ASSESSMENT_UPDATED"
	ActionAssessmentCompleted    ActionType = "ASSESSMENT_COMPLETED"
	ActionAutoDiscoveryCompleted ActionType = "AUTO_DISCOVERY_COMPLETED"
)

// AuditLog is an append-only record of a governance-relevant mutation. AssetID
// is nil for tenant-global actions such as bulk discovery. Entries are never
// updated or deleted by the application.
type AuditLog struct {
	ID        uuid.UUID
	Action    ActionType
	Details   string
	AssetID   *AssetID
	UserID    UserID
	CreatedAt time.Time
}

// AuditLogEntry is an audit record joined with the acting user's identity, as
// returned by the per-asset audit trail listing.
type AuditLogEntry struct {
	AuditLog
	UserName  string
	UserEmail string
}
