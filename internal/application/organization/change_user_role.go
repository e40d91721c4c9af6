package organization

import (
	"context"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type ChangeUserRoleInput struct {
	Scope        domain.Scope
	TargetUserID domain.UserID
	Role         domain.Role
}

type ChangeUserRole struct {
	users ports.UserRepository
}

func NewChangeUserRole(users ports.UserRepository) *ChangeUserRole {
	return &ChangeUserRole{users: users}
}

// Execute sets another member's role, or the caller's own. Demoting the
// organization's only admin is refused; every tenant keeps at least one.
func (uc *ChangeUserRole) Execute(ctx context.Context, input ChangeUserRoleInput) (*domain.User, error) {
	target, err := uc.users.GetByID(ctx, input.TargetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.OrganizationID == nil || *target.OrganizationID != input.Scope.OrganizationID {
		return nil, domerrors.ErrNotFound
	}

	if target.IsAdmin() && input.Role != domain.RoleAdmin {
		count, err := uc.users.CountAdmins(ctx, input.Scope.OrganizationID)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, domerrors.ErrLastAdmin
		}
	}

	if err := uc.users.UpdateRole(ctx, input.Scope.OrganizationID, input.TargetUserID, input.Role); err != nil {
		return nil, err
	}
	target.Role = input.Role
	return target, nil
}
