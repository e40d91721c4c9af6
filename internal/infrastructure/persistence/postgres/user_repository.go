package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

const (
	userColumns = `id, name, email, password_hash, role, organization_id, created_at, updated_at`

	createUserSQL = `INSERT INTO users (id, name, email, password_hash, role, organization_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	getUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	listOrgUsersSQL   = `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 ORDER BY name ASC`
	listOrgAdminsSQL  = `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 AND role = 'ADMIN'`
	countOrgAdminsSQL = `SELECT COUNT(*) FROM users WHERE organization_id = $1 AND role = 'ADMIN'`
	updateUserRoleSQL = `UPDATE users SET role = $3, updated_at = NOW() WHERE organization_id = $1 AND id = $2`
	setUserOrgSQL     = `UPDATE users SET organization_id = $2, role = $3, updated_at = NOW() WHERE id = $1`
)

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	var orgID *uuid.UUID
	if user.OrganizationID != nil {
		orgID = &user.OrganizationID.UUID
	}
	_, err := r.store.db(ctx).Exec(ctx, createUserSQL,
		user.ID.UUID, user.Name, user.Email, user.PasswordHash, string(user.Role),
		orgID, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	return scanUser(r.store.db(ctx).QueryRow(ctx, getUserByIDSQL, userID.UUID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.store.db(ctx).QueryRow(ctx, getUserByEmailSQL, email))
}

func (r *UserRepository) ListByOrganization(ctx context.Context, orgID domain.OrganizationID) ([]*domain.User, error) {
	return r.list(ctx, listOrgUsersSQL, orgID)
}

func (r *UserRepository) ListAdmins(ctx context.Context, orgID domain.OrganizationID) ([]*domain.User, error) {
	return r.list(ctx, listOrgAdminsSQL, orgID)
}

func (r *UserRepository) list(ctx context.Context, sql string, orgID domain.OrganizationID) ([]*domain.User, error) {
	rows, err := r.store.db(ctx).Query(ctx, sql, orgID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *UserRepository) CountAdmins(ctx context.Context, orgID domain.OrganizationID) (int, error) {
	var count int
	err := r.store.db(ctx).QueryRow(ctx, countOrgAdminsSQL, orgID.UUID).Scan(&count)
	return count, err
}

func (r *UserRepository) UpdateRole(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID, role domain.Role) error {
	_, err := r.store.db(ctx).Exec(ctx, updateUserRoleSQL, orgID.UUID, userID.UUID, string(role))
	return err
}

func (r *UserRepository) SetOrganization(ctx context.Context, userID domain.UserID, orgID *domain.OrganizationID, role domain.Role) error {
	var oid *uuid.UUID
	if orgID != nil {
		oid = &orgID.UUID
	}
	_, err := r.store.db(ctx).Exec(ctx, setUserOrgSQL, userID.UUID, oid, string(role))
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id    uuid.UUID
		role  string
		orgID *uuid.UUID
		user  domain.User
	)
	err := row.Scan(&id, &user.Name, &user.Email, &user.PasswordHash, &role, &orgID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	user.ID = domain.NewUserID(id)
	user.Role = domain.Role(role)
	if orgID != nil {
		o := domain.NewOrganizationID(*orgID)
		user.OrganizationID = &o
	}
	return &user, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
