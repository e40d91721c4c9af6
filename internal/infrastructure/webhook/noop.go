package webhook

import (
	"context"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
)

// NoopEmitter discards alerts when no webhook URL is configured.
type NoopEmitter struct{}

// NewNoopEmitter returns an EventEmitter that discards all alerts.
func NewNoopEmitter() *NoopEmitter {
	return &NoopEmitter{}
}

// Emit implements ports.EventEmitter.
func (e *NoopEmitter) Emit(ctx context.Context, event ports.RiskAlert) error {
	return nil
}

var _ ports.EventEmitter = (*NoopEmitter)(nil)
