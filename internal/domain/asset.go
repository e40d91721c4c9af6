package domain

import "time"

// AssetStatus is the lifecycle status of an AI asset.
type AssetStatus string

const (
	AssetProposed AssetStatus = "Proposed"
	AssetInReview AssetStatus = "InReview"
	AssetActive   AssetStatus = "Active"
	AssetRetired  AssetStatus = "Retired"
)

// Valid reports whether s is one of the known asset statuses.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetProposed, AssetInReview, AssetActive, AssetRetired:
		return true
	}
	return false
}

// Asset is a registered AI system or model under governance.
type Asset struct {
	ID                 AssetID
	OrganizationID     OrganizationID
	Name               string
	Owner              string
	BusinessPurpose    string
	Status             AssetStatus
	RiskClassification RiskLevel
	VendorID           *VendorID
	// DiscoveredID is the upstream identifier for assets found by
	// auto-discovery (e.g. a SageMaker model ARN). Empty for manually
	// registered assets; used to dedupe repeated sync runs.
	DiscoveredID   string
	DateRegistered time.Time
}
