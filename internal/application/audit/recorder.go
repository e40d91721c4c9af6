// Package audit writes the persisted governance audit trail.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

// Recorder appends audit log entries. Writes are best-effort by policy: a
// failed insert is logged and swallowed so that an audit failure never rolls
// back or masks the primary mutation it describes.
type Recorder struct {
	logs ports.AuditLogRepository
	log  zerolog.Logger
}

// NewRecorder builds a Recorder.
func NewRecorder(logs ports.AuditLogRepository, log zerolog.Logger) *Recorder {
	return &Recorder{logs: logs, log: log}
}

// Record appends one entry. assetID is nil for tenant-global actions such as
// bulk discovery.
func (r *Recorder) Record(ctx context.Context, action domain.ActionType, details string, assetID *domain.AssetID, userID domain.UserID) {
	entry := &domain.AuditLog{
		ID:        uuid.New(),
		Action:    action,
		Details:   details,
		AssetID:   assetID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.logs.Create(ctx, entry); err != nil {
		ev := r.log.Error().Err(err).
			Str("action", string(action)).
			Str("user_id", userID.String())
		if assetID != nil {
			ev = ev.Str("asset_id", assetID.String())
		}
		ev.Msg("audit log write failed")
	}
}
