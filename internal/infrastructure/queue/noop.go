package queue

import (
	"context"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
)

// NoopEnqueuer discards tasks when Redis is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueRiskAlert(ctx context.Context, alert ports.RiskAlert) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
