package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

type AssetRepository struct {
	store *Store
}

func NewAssetRepository(store *Store) *AssetRepository {
	return &AssetRepository{store: store}
}

const (
	assetColumns = `id, organization_id, name, owner, business_purpose, status, risk_classification, vendor_id, discovered_id, date_registered`

	createAssetSQL = `INSERT INTO assets (id, organization_id, name, owner, business_purpose, status, risk_classification, vendor_id, discovered_id, date_registered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	getAssetSQL    = `SELECT ` + assetColumns + ` FROM assets WHERE organization_id = $1 AND id = $2`
	listAssetsSQL  = `SELECT ` + assetColumns + ` FROM assets WHERE organization_id = $1 ORDER BY date_registered DESC`
	updateAssetSQL = `UPDATE assets SET name = $3, owner = $4, business_purpose = $5, status = $6, risk_classification = $7, vendor_id = $8
		WHERE organization_id = $1 AND id = $2`
	updateAssetRiskSQL  = `UPDATE assets SET risk_classification = $3 WHERE organization_id = $1 AND id = $2`
	deleteAssetSQL      = `DELETE FROM assets WHERE organization_id = $1 AND id = $2`
	createDiscoveredSQL = `INSERT INTO assets (id, organization_id, name, owner, business_purpose, status, risk_classification, vendor_id, discovered_id, date_registered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, $9)
		ON CONFLICT (organization_id, discovered_id) DO NOTHING`
	countAssetsByVendorSQL = `SELECT COUNT(*) FROM assets WHERE organization_id = $1 AND vendor_id = $2`
	countAssetsByRiskSQL   = `SELECT risk_classification, COUNT(*) FROM assets WHERE organization_id = $1 GROUP BY risk_classification`
	countAssetsByStatusSQL = `SELECT status, COUNT(*) FROM assets WHERE organization_id = $1 GROUP BY status`
)

func (r *AssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	_, err := r.store.db(ctx).Exec(ctx, createAssetSQL, assetArgs(asset)...)
	return err
}

func (r *AssetRepository) GetByID(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID) (*domain.Asset, error) {
	return scanAsset(r.store.db(ctx).QueryRow(ctx, getAssetSQL, orgID.UUID, assetID.UUID))
}

func (r *AssetRepository) List(ctx context.Context, orgID domain.OrganizationID) ([]*domain.Asset, error) {
	rows, err := r.store.db(ctx).Query(ctx, listAssetsSQL, orgID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, asset)
	}
	return out, rows.Err()
}

func (r *AssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	var vendorID *uuid.UUID
	if asset.VendorID != nil {
		vendorID = &asset.VendorID.UUID
	}
	_, err := r.store.db(ctx).Exec(ctx, updateAssetSQL,
		asset.OrganizationID.UUID, asset.ID.UUID,
		asset.Name, asset.Owner, asset.BusinessPurpose,
		string(asset.Status), string(asset.RiskClassification), vendorID)
	return err
}

func (r *AssetRepository) UpdateRiskClassification(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID, level domain.RiskLevel) error {
	_, err := r.store.db(ctx).Exec(ctx, updateAssetRiskSQL, orgID.UUID, assetID.UUID, string(level))
	return err
}

func (r *AssetRepository) Delete(ctx context.Context, orgID domain.OrganizationID, assetID domain.AssetID) error {
	_, err := r.store.db(ctx).Exec(ctx, deleteAssetSQL, orgID.UUID, assetID.UUID)
	return err
}

func (r *AssetRepository) CreateDiscovered(ctx context.Context, assets []*domain.Asset) (int, error) {
	count := 0
	for _, asset := range assets {
		tag, err := r.store.db(ctx).Exec(ctx, createDiscoveredSQL,
			asset.ID.UUID, asset.OrganizationID.UUID,
			asset.Name, asset.Owner, asset.BusinessPurpose,
			string(asset.Status), string(asset.RiskClassification),
			asset.DiscoveredID, asset.DateRegistered)
		if err != nil {
			return count, err
		}
		count += int(tag.RowsAffected())
	}
	return count, nil
}

func (r *AssetRepository) CountByVendor(ctx context.Context, orgID domain.OrganizationID, vendorID domain.VendorID) (int, error) {
	var count int
	err := r.store.db(ctx).QueryRow(ctx, countAssetsByVendorSQL, orgID.UUID, vendorID.UUID).Scan(&count)
	return count, err
}

func (r *AssetRepository) CountByRisk(ctx context.Context, orgID domain.OrganizationID) (map[domain.RiskLevel]int, error) {
	out := make(map[domain.RiskLevel]int)
	err := r.countGrouped(ctx, countAssetsByRiskSQL, orgID, func(key string, count int) {
		out[domain.RiskLevel(key)] = count
	})
	return out, err
}

func (r *AssetRepository) CountByStatus(ctx context.Context, orgID domain.OrganizationID) (map[domain.AssetStatus]int, error) {
	out := make(map[domain.AssetStatus]int)
	err := r.countGrouped(ctx, countAssetsByStatusSQL, orgID, func(key string, count int) {
		out[domain.AssetStatus(key)] = count
	})
	return out, err
}

func (r *AssetRepository) countGrouped(ctx context.Context, sql string, orgID domain.OrganizationID, add func(key string, count int)) error {
	rows, err := r.store.db(ctx).Query(ctx, sql, orgID.UUID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		add(key, count)
	}
	return rows.Err()
}

func assetArgs(asset *domain.Asset) []any {
	var vendorID *uuid.UUID
	if asset.VendorID != nil {
		vendorID = &asset.VendorID.UUID
	}
	var discoveredID *string
	if asset.DiscoveredID != "" {
		discoveredID = &asset.DiscoveredID
	}
	return []any{
		asset.ID.UUID, asset.OrganizationID.UUID,
		asset.Name, asset.Owner, asset.BusinessPurpose,
		string(asset.Status), string(asset.RiskClassification),
		vendorID, discoveredID, asset.DateRegistered,
	}
}

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var (
		id           uuid.UUID
		orgID        uuid.UUID
		status       string
		risk         string
		vendorID     *uuid.UUID
		discoveredID *string
		asset        domain.Asset
	)
	err := row.Scan(&id, &orgID, &asset.Name, &asset.Owner, &asset.BusinessPurpose,
		&status, &risk, &vendorID, &discoveredID, &asset.DateRegistered)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	asset.ID = domain.NewAssetID(id)
	asset.OrganizationID = domain.NewOrganizationID(orgID)
	asset.Status = domain.AssetStatus(status)
	asset.RiskClassification = domain.RiskLevel(risk)
	if vendorID != nil {
		v := domain.NewVendorID(*vendorID)
		asset.VendorID = &v
	}
	if discoveredID != nil {
		asset.DiscoveredID = *discoveredID
	}
	return &asset, nil
}

var _ ports.AssetRepository = (*AssetRepository)(nil)
