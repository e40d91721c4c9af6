package organization

import (
	"context"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type JoinOrganizationInput struct {
	UserID     domain.UserID
	InviteCode string
}

type JoinOrganization struct {
	orgs  ports.OrganizationRepository
	users ports.UserRepository
}

func NewJoinOrganization(orgs ports.OrganizationRepository, users ports.UserRepository) *JoinOrganization {
	return &JoinOrganization{orgs: orgs, users: users}
}

// Execute adds the caller to the organization behind the invite code, as a
// regular member.
func (uc *JoinOrganization) Execute(ctx context.Context, input JoinOrganizationInput) (*domain.Organization, error) {
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

	org, err := uc.orgs.GetByInviteCode(ctx, input.InviteCode)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domerrors.ErrInvalidInviteCode
	}

	if err := uc.users.SetOrganization(ctx, input.UserID, &org.ID, domain.RoleMember); err != nil {
		return nil, err
	}
	return org, nil
}
