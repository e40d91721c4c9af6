package organization

import (
	"context"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type LeaveOrganizationInput struct {
	UserID domain.UserID
}

type LeaveOrganization struct {
	users ports.UserRepository
}

func NewLeaveOrganization(users ports.UserRepository) *LeaveOrganization {
	return &LeaveOrganization{users: users}
}

// Execute detaches the caller from their organization. The last admin must
// hand off the role first; otherwise the tenant would be left unmanageable.
func (uc *LeaveOrganization) Execute(ctx context.Context, input LeaveOrganizationInput) error {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domerrors.ErrUserNotFound
	}
	if user.OrganizationID == nil {
		return domerrors.ErrNoOrganization
	}
	if user.IsAdmin() {
		admins, err := uc.users.CountAdmins(ctx, *user.OrganizationID)
		if err != nil {
			return err
		}
		members, err := uc.users.ListByOrganization(ctx, *user.OrganizationID)
		if err != nil {
			return err
		}
		if admins <= 1 && len(members) > 1 {
			return domerrors.ErrLastAdmin
		}
	}
	return uc.users.SetOrganization(ctx, input.UserID, nil, domain.RoleMember)
}
