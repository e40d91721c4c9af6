package auth

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

// OAuthUser is the minimal info we get from a provider (Goth user).
type OAuthUser struct {
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
}

// OAuthCallbackResult returns tokens and user after successful OAuth.
type OAuthCallbackResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *domain.User
}

// OAuthCallback gets or creates a user from an OAuth identity and issues
// tokens. Accounts are matched by provider identity first, then linked by
// email.
type OAuthCallback struct {
	identityStore ports.IdentityStore
	userRepo      ports.UserRepository
	hasher        ports.PasswordHasher
	issuer        ports.TokenIssuer
	tokenStore    ports.TokenStore
	accessExp     int64
	refreshExp    int64
}

func NewOAuthCallback(identityStore ports.IdentityStore, userRepo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, tokenStore ports.TokenStore, accessExp, refreshExp int64) *OAuthCallback {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	if refreshExp <= 0 {
		refreshExp = DefaultRefreshTokenExpiry
	}
	return &OAuthCallback{
		identityStore: identityStore,
		userRepo:      userRepo,
		hasher:        hasher,
		issuer:        issuer,
		tokenStore:    tokenStore,
		accessExp:     accessExp,
		refreshExp:    refreshExp,
	}
}

func (uc *OAuthCallback) Execute(ctx context.Context, oauth OAuthUser) (*OAuthCallbackResult, error) {
	userID, err := uc.identityStore.GetUserIDByProvider(ctx, oauth.Provider, oauth.ProviderUserID)
	if err == nil {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil || user == nil {
			return nil, domerrors.ErrUserNotFound
		}
		return uc.issueFor(ctx, user)
	}
	if err != domerrors.ErrIdentityNotFound {
		return nil, err
	}

	user, err := uc.userRepo.GetByEmail(ctx, oauth.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		// same email, first time through this provider: link the identity
		if err := uc.identityStore.Create(ctx, user.ID, oauth.Provider, oauth.ProviderUserID); err != nil {
			return nil, err
		}
		return uc.issueFor(ctx, user)
	}

	// OAuth-only account: random unguessable password
	id := uuid.New()
	passwordHash, err := uc.hasher.Hash(hex.EncodeToString(id[:]) + "oauth")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user = &domain.User{
		ID:           domain.NewUserID(id),
		Name:         oauth.Name,
		Email:        oauth.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.identityStore.Create(ctx, user.ID, oauth.Provider, oauth.ProviderUserID); err != nil {
		return nil, err
	}
	return uc.issueFor(ctx, user)
}

func (uc *OAuthCallback) issueFor(ctx context.Context, user *domain.User) (*OAuthCallbackResult, error) {
	access, refresh, err := issueTokenPair(ctx, uc.issuer, uc.tokenStore, user.ID, uc.accessExp, uc.refreshExp)
	if err != nil {
		return nil, err
	}
	return &OAuthCallbackResult{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    uc.accessExp,
		User:         user,
	}, nil
}
