package ports

import "context"

// RiskAlert is the payload delivered out-of-band when an asset's risk tier
// changes from a completed assessment.
type RiskAlert struct {
	OrganizationID string `json:"organizationId"`
	AssetID        string `json:"assetId"`
	AssetName      string `json:"assetName"`
	RiskLevel      string `json:"riskLevel"`
	Score          int    `json:"score"`
}

// TaskEnqueuer enqueues async delivery work (email/webhook). Enqueue failures
// are side-effect failures: callers log and continue.
type TaskEnqueuer interface {
	EnqueueRiskAlert(ctx context.Context, alert RiskAlert) error
}

// EventEmitter pushes governance events to an external HTTP endpoint.
type EventEmitter interface {
	Emit(ctx context.Context, event RiskAlert) error
}
