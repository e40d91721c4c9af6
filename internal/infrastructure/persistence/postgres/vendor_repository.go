package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type VendorRepository struct {
	store *Store
}

func NewVendorRepository(store *Store) *VendorRepository {
	return &VendorRepository{store: store}
}

const (
	vendorColumns = `id, organization_id, name, website, status, created_at`

	createVendorSQL = `INSERT INTO vendors (id, organization_id, name, website, status, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	getVendorSQL    = `SELECT ` + vendorColumns + ` FROM vendors WHERE organization_id = $1 AND id = $2`
	listVendorsSQL  = `SELECT ` + vendorColumns + ` FROM vendors WHERE organization_id = $1 ORDER BY name ASC`
	updateVendorSQL = `UPDATE vendors SET name = $3, website = $4, status = $5 WHERE organization_id = $1 AND id = $2`
	deleteVendorSQL = `DELETE FROM vendors WHERE organization_id = $1 AND id = $2`
)

func (r *VendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	_, err := r.store.db(ctx).Exec(ctx, createVendorSQL,
		vendor.ID.UUID, vendor.OrganizationID.UUID, vendor.Name, vendor.Website,
		string(vendor.Status), vendor.CreatedAt)
	if isUniqueViolation(err) {
		return domerrors.ErrDuplicateName
	}
	return err
}

func (r *VendorRepository) GetByID(ctx context.Context, orgID domain.OrganizationID, vendorID domain.VendorID) (*domain.Vendor, error) {
	return scanVendor(r.store.db(ctx).QueryRow(ctx, getVendorSQL, orgID.UUID, vendorID.UUID))
}

func (r *VendorRepository) List(ctx context.Context, orgID domain.OrganizationID) ([]*domain.Vendor, error) {
	rows, err := r.store.db(ctx).Query(ctx, listVendorsSQL, orgID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, vendor)
	}
	return out, rows.Err()
}

func (r *VendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	_, err := r.store.db(ctx).Exec(ctx, updateVendorSQL,
		vendor.OrganizationID.UUID, vendor.ID.UUID,
		vendor.Name, vendor.Website, string(vendor.Status))
	if isUniqueViolation(err) {
		return domerrors.ErrDuplicateName
	}
	return err
}

func (r *VendorRepository) Delete(ctx context.Context, orgID domain.OrganizationID, vendorID domain.VendorID) error {
	_, err := r.store.db(ctx).Exec(ctx, deleteVendorSQL, orgID.UUID, vendorID.UUID)
	return err
}

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var (
		id     uuid.UUID
		orgID  uuid.UUID
		status string
		vendor domain.Vendor
	)
	err := row.Scan(&id, &orgID, &vendor.Name, &vendor.Website, &status, &vendor.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	vendor.ID = domain.NewVendorID(id)
	vendor.OrganizationID = domain.NewOrganizationID(orgID)
	vendor.Status = domain.VendorStatus(status)
	return &vendor, nil
}

var _ ports.VendorRepository = (*VendorRepository)(nil)
