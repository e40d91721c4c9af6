package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type fakeUserRepo struct {
	ports.UserRepository
	byEmail map[string]*domain.User
	created []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.byEmail[u.Email] = u
	f.created = append(f.created, u)
	return nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return "hashed:"+password == hash }

type fakeIssuer struct{}

func (fakeIssuer) IssueAccessToken(userID string, _ int64) (string, error) {
	return "access-for-" + userID, nil
}

func (fakeIssuer) ValidateAccessToken(string) (string, error) { return "", nil }

type fakeTokenStore struct {
	byHash  map[string]*ports.RefreshTokenInfo
	revoked []string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{byHash: map[string]*ports.RefreshTokenInfo{}}
}

func (f *fakeTokenStore) StoreRefreshToken(_ context.Context, userID domain.UserID, tokenHash string, expiresAt time.Time) error {
	f.byHash[tokenHash] = &ports.RefreshTokenInfo{UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeTokenStore) GetRefreshToken(_ context.Context, tokenHash string) (*ports.RefreshTokenInfo, error) {
	return f.byHash[tokenHash], nil
}

func (f *fakeTokenStore) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	delete(f.byHash, tokenHash)
	f.revoked = append(f.revoked, tokenHash)
	return nil
}

func seedUser(users *fakeUserRepo, email, password string) *domain.User {
	u := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Name:         "Dana",
		Email:        email,
		PasswordHash: "hashed:" + password,
		Role:         domain.RoleMember,
	}
	users.byEmail[email] = u
	return u
}

func TestLoginIssuesTokenPair(t *testing.T) {
	users := newFakeUserRepo()
	store := newFakeTokenStore()
	u := seedUser(users, "dana@example.com", "s3cret")

	uc := NewLogin(users, fakeHasher{}, fakeIssuer{}, store, 0, 0)
	result, err := uc.Execute(context.Background(), LoginInput{Email: "dana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "access-for-"+u.ID.String(), result.AccessToken)
	assert.Equal(t, int64(DefaultAccessTokenExpiry), result.ExpiresIn)
	assert.NotEmpty(t, result.RefreshToken)
	// The raw refresh token must not be stored verbatim.
	_, rawStored := store.byHash[result.RefreshToken]
	assert.False(t, rawStored)
	assert.Len(t, store.byHash, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "dana@example.com", "s3cret")

	uc := NewLogin(users, fakeHasher{}, fakeIssuer{}, newFakeTokenStore(), 0, 0)
	_, err := uc.Execute(context.Background(), LoginInput{Email: "dana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)

	_, err = uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	users := newFakeUserRepo()
	store := newFakeTokenStore()
	seedUser(users, "dana@example.com", "s3cret")

	login, err := NewLogin(users, fakeHasher{}, fakeIssuer{}, store, 0, 0).
		Execute(context.Background(), LoginInput{Email: "dana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	uc := NewRefresh(fakeIssuer{}, store, 0, 0)
	result, err := uc.Execute(context.Background(), RefreshInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, result.RefreshToken)
	assert.Len(t, store.revoked, 1)

	// The presented token is spent; replaying it must fail.
	_, err = uc.Execute(context.Background(), RefreshInput{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	store := newFakeTokenStore()
	userID := domain.NewUserID(uuid.New())
	store.byHash[hashForStorage("stale")] = &ports.RefreshTokenInfo{
		UserID:    userID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	uc := NewRefresh(fakeIssuer{}, store, 0, 0)
	_, err := uc.Execute(context.Background(), RefreshInput{RefreshToken: "stale"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)

	_, err = uc.Execute(context.Background(), RefreshInput{RefreshToken: ""})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestRegisterRejectsBadEmailAndDuplicate(t *testing.T) {
	users := newFakeUserRepo()
	uc := NewRegisterUser(users, fakeHasher{})

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Name: "Dana", Email: "not-an-email", Password: "longenough",
	})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)

	created, err := uc.Execute(context.Background(), RegisterUserInput{
		Name: "Dana", Email: "dana@example.com", Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, created.User.Role)
	assert.Nil(t, created.User.OrganizationID)

	_, err = uc.Execute(context.Background(), RegisterUserInput{
		Name: "Dana Again", Email: "dana@example.com", Password: "longenough",
	})
	assert.ErrorIs(t, err, domerrors.ErrUserExists)
}
