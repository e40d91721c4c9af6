package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
)

// TokenStore persists refresh token digests. Raw tokens never touch the
// database.
type TokenStore struct {
	store *Store
}

func NewTokenStore(store *Store) *TokenStore {
	return &TokenStore{store: store}
}

const (
	storeRefreshTokenSQL = `INSERT INTO refresh_tokens (token_hash, user_id, expires_at, created_at) VALUES ($1, $2, $3, NOW())`
	getRefreshTokenSQL   = `SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash = $1 AND revoked_at IS NULL`
	revokeRefreshSQL     = `UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = $1 AND revoked_at IS NULL`
)

func (s *TokenStore) StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt time.Time) error {
	_, err := s.store.db(ctx).Exec(ctx, storeRefreshTokenSQL, tokenHash, userID.UUID, expiresAt)
	return err
}

func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshTokenInfo, error) {
	var (
		userID    uuid.UUID
		expiresAt time.Time
	)
	err := s.store.db(ctx).QueryRow(ctx, getRefreshTokenSQL, tokenHash).Scan(&userID, &expiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &ports.RefreshTokenInfo{
		UserID:    domain.NewUserID(userID),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *TokenStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := s.store.db(ctx).Exec(ctx, revokeRefreshSQL, tokenHash)
	return err
}

var _ ports.TokenStore = (*TokenStore)(nil)
