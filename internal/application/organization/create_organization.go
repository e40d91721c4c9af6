// Package organization contains membership and tenancy use-cases.
package organization

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type CreateOrganizationInput struct {
	UserID domain.UserID
	Name   string
}

type CreateOrganization struct {
	orgs  ports.OrganizationRepository
	users ports.UserRepository
	tx    ports.TxManager
}

func NewCreateOrganization(orgs ports.OrganizationRepository, users ports.UserRepository, tx ports.TxManager) *CreateOrganization {
	return &CreateOrganization{orgs: orgs, users: users, tx: tx}
}

// Execute creates an organization and makes the caller its first admin. A
// user already in an organization must leave before creating another.
func (uc *CreateOrganization) Execute(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if user.OrganizationID != nil {
		return nil, domerrors.ErrAlreadyInOrg
	}

	code, err := newInviteCode()
	if err != nil {
		return nil, err
	}
	org := &domain.Organization{
		ID:         domain.NewOrganizationID(uuid.New()),
		Name:       input.Name,
		InviteCode: code,
		CreatedAt:  time.Now().UTC(),
	}
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.orgs.Create(ctx, org); err != nil {
			return err
		}
		return uc.users.SetOrganization(ctx, input.UserID, &org.ID, domain.RoleAdmin)
	})
	if err != nil {
		return nil, err
	}
	return org, nil
}

func newInviteCode() (string, error) {
	raw := make([]byte, 6)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
