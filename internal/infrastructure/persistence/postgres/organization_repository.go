package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

type OrganizationRepository struct {
	store *Store
}

func NewOrganizationRepository(store *Store) *OrganizationRepository {
	return &OrganizationRepository{store: store}
}

const (
	createOrganizationSQL = `INSERT INTO organizations (id, name, invite_code, created_at) VALUES ($1, $2, $3, $4)`
	getOrganizationSQL    = `SELECT id, name, invite_code, created_at FROM organizations WHERE id = $1`
	getOrgByInviteSQL     = `SELECT id, name, invite_code, created_at FROM organizations WHERE invite_code = $1`
)

func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	_, err := r.store.db(ctx).Exec(ctx, createOrganizationSQL,
		org.ID.UUID, org.Name, org.InviteCode, org.CreatedAt)
	return err
}

func (r *OrganizationRepository) GetByID(ctx context.Context, orgID domain.OrganizationID) (*domain.Organization, error) {
	return r.scanOne(r.store.db(ctx).QueryRow(ctx, getOrganizationSQL, orgID.UUID))
}

func (r *OrganizationRepository) GetByInviteCode(ctx context.Context, inviteCode string) (*domain.Organization, error) {
	return r.scanOne(r.store.db(ctx).QueryRow(ctx, getOrgByInviteSQL, inviteCode))
}

func (r *OrganizationRepository) scanOne(row pgx.Row) (*domain.Organization, error) {
	var (
		id  uuid.UUID
		org domain.Organization
	)
	err := row.Scan(&id, &org.Name, &org.InviteCode, &org.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	org.ID = domain.NewOrganizationID(id)
	return &org, nil
}

var _ ports.OrganizationRepository = (*OrganizationRepository)(nil)
