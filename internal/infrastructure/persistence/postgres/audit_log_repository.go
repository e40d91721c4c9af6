package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

// AuditLogRepository is append-only; entries survive deletion of the asset
// they describe (the foreign key nulls out).
type AuditLogRepository struct {
	store *Store
}

func NewAuditLogRepository(store *Store) *AuditLogRepository {
	return &AuditLogRepository{store: store}
}

const (
	createAuditLogSQL   = `INSERT INTO audit_logs (id, action, details, asset_id, user_id, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	listAuditByAssetSQL = `SELECT l.id, l.action, l.details, l.asset_id, l.user_id, l.created_at, u.name, u.email
		FROM audit_logs l
		JOIN users u ON u.id = l.user_id
		JOIN assets s ON s.id = l.asset_id
		WHERE s.organization_id = $1 AND l.asset_id = $2
		ORDER BY l.created_at DESC`
)

func (r *AuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	var assetID *uuid.UUID
	if entry.AssetID != nil {
		assetID = &entry.AssetID.UUID
	}
	_, err := r.store.db(ctx).Exec(ctx, createAuditLogSQL,
		entry.ID, string(entry.Action), entry.Details, assetID, entry.UserID.UUID, entry.CreatedAt)
	return err
}

func (r *AuditLogRepository) ListByAsset(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID) ([]*domain.AuditLogEntry, error) {
	rows, err := r.store.db(ctx).Query(ctx, listAuditByAssetSQL, orgID.UUID, assetID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AuditLogEntry
	for rows.Next() {
		var (
			action string
			aid    *uuid.UUID
			userID uuid.UUID
			entry  domain.AuditLogEntry
		)
		err := rows.Scan(&entry.ID, &action, &entry.Details, &aid, &userID, &entry.CreatedAt, &entry.UserName, &entry.UserEmail)
		if err != nil {
			return nil, err
		}
		entry.Action = domain.ActionType(action)
		entry.UserID = domain.NewUserID(userID)
		if aid != nil {
			a := domain.NewAssetID(*aid)
			entry.AssetID = &a
		}
		out = append(out, &entry)
	}
	return out, rows.Err()
}

var _ ports.AuditLogRepository = (*AuditLogRepository)(nil)
