package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

type NotificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

const (
	createNotificationSQL = `INSERT INTO notifications (id, user_id, message, asset_id, is_read, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	listUnreadSQL         = `SELECT id, user_id, message, asset_id, is_read, created_at FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC
		LIMIT $2`
	markAllReadSQL = `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`
)

// CreateBatch inserts all notifications in one round trip. pgx wraps an
// implicit transaction around the batch, so a failure leaves no partial
// fan-out behind.
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, n := range notifications {
		var assetID *uuid.UUID
		if n.AssetID != nil {
			assetID = &n.AssetID.UUID
		}
		batch.Queue(createNotificationSQL,
			n.ID, n.UserID.UUID, n.Message, assetID, n.IsRead, n.CreatedAt)
	}
	results := r.store.db(ctx).SendBatch(ctx, batch)
	defer results.Close()
	for range notifications {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

func (r *NotificationRepository) ListUnread(ctx context.Context, userID domain.UserID, limit int) ([]*domain.Notification, error) {
	rows, err := r.store.db(ctx).Query(ctx, listUnreadSQL, userID.UUID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		var (
			uid     uuid.UUID
			assetID *uuid.UUID
			n       domain.Notification
		)
		if err := rows.Scan(&n.ID, &uid, &n.Message, &assetID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.UserID = domain.NewUserID(uid)
		if assetID != nil {
			a := domain.NewAssetID(*assetID)
			n.AssetID = &a
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID domain.UserID) error {
	_, err := r.store.db(ctx).Exec(ctx, markAllReadSQL, userID.UUID)
	return err
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)
