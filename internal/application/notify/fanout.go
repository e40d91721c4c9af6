// Package notify delivers in-app notifications to organization admins.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

// AdminFanout creates one notification per admin of an organization. Like
// audit writes, delivery is best-effort: failures are logged and swallowed.
type AdminFanout struct {
	users         ports.UserRepository
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

// NewAdminFanout builds an AdminFanout.
func NewAdminFanout(users ports.UserRepository, notifications ports.NotificationRepository, log zerolog.Logger) *AdminFanout {
	return &AdminFanout{users: users, notifications: notifications, log: log}
}

// NotifyAdmins sends message to every admin of orgID, including the admin who
// triggered the change. assetID is optional.
func (f *AdminFanout) NotifyAdmins(ctx context.Context, orgID domain.OrganizationID, message string, assetID *domain.AssetID) {
	admins, err := f.users.ListAdmins(ctx, orgID)
	if err != nil {
		f.log.Error().Err(err).Str("organization_id", orgID.String()).Msg("admin lookup for notification failed")
		return
	}
	if len(admins) == 0 {
		return
	}

	now := time.Now().UTC()
	batch := make([]*domain.Notification, 0, len(admins))
	for _, admin := range admins {
		batch = append(batch, &domain.Notification{
			ID:        uuid.New(),
			UserID:    admin.ID,
			Message:   message,
			AssetID:   assetID,
			CreatedAt: now,
		})
	}
	if err := f.notifications.CreateBatch(ctx, batch); err != nil {
		f.log.Error().Err(err).
			Str("organization_id", orgID.String()).
			Int("recipients", len(batch)).
			Msg("notification fanout failed")
	}
}
