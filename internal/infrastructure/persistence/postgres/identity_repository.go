package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

// IdentityRepository links OAuth provider accounts to local users.
type IdentityRepository struct {
	store *Store
}

func NewIdentityRepository(store *Store) *IdentityRepository {
	return &IdentityRepository{store: store}
}

const (
	getIdentitySQL    = `SELECT user_id FROM oauth_identities WHERE provider = $1 AND provider_user_id = $2`
	createIdentitySQL = `INSERT INTO oauth_identities (provider, provider_user_id, user_id, created_at) VALUES ($1, $2, $3, NOW())`
)

func (r *IdentityRepository) GetUserIDByProvider(ctx context.Context, provider, providerUserID string) (domain.UserID, error) {
	var userID uuid.UUID
	err := r.store.db(ctx).QueryRow(ctx, getIdentitySQL, provider, providerUserID).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.UserID{}, domerrors.ErrIdentityNotFound
		}
		return domain.UserID{}, err
	}
	return domain.NewUserID(userID), nil
}

func (r *IdentityRepository) Create(ctx context.Context, userID domain.UserID, provider, providerUserID string) error {
	_, err := r.store.db(ctx).Exec(ctx, createIdentitySQL, provider, providerUserID, userID.UUID)
	return err
}

var _ ports.IdentityStore = (*IdentityRepository)(nil)
