package organization

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

type fakeUserRepo struct {
	ports.UserRepository
	byID map[domain.UserID]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) CountAdmins(_ context.Context, orgID domain.OrganizationID) (int, error) {
	count := 0
	for _, u := range f.byID {
		if u.OrganizationID != nil && *u.OrganizationID == orgID && u.IsAdmin() {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) ListByOrganization(_ context.Context, orgID domain.OrganizationID) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.byID {
		if u.OrganizationID != nil && *u.OrganizationID == orgID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, orgID domain.OrganizationID, id domain.UserID, role domain.Role) error {
	u := f.byID[id]
	if u != nil && u.OrganizationID != nil && *u.OrganizationID == orgID {
		u.Role = role
	}
	return nil
}

func (f *fakeUserRepo) SetOrganization(_ context.Context, id domain.UserID, orgID *domain.OrganizationID, role domain.Role) error {
	u := f.byID[id]
	u.OrganizationID = orgID
	u.Role = role
	return nil
}

type fakeOrgRepo struct {
	ports.OrganizationRepository
	byCode  map[string]*domain.Organization
	created []*domain.Organization
}

func (f *fakeOrgRepo) Create(_ context.Context, org *domain.Organization) error {
	f.created = append(f.created, org)
	return nil
}

func (f *fakeOrgRepo) GetByInviteCode(_ context.Context, code string) (*domain.Organization, error) {
	return f.byCode[code], nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func orgWithUsers(roles ...domain.Role) (domain.OrganizationID, *fakeUserRepo, []domain.UserID) {
	orgID := domain.NewOrganizationID(uuid.New())
	users := &fakeUserRepo{byID: map[domain.UserID]*domain.User{}}
	ids := make([]domain.UserID, 0, len(roles))
	for _, role := range roles {
		id := domain.NewUserID(uuid.New())
		oid := orgID
		users.byID[id] = &domain.User{ID: id, OrganizationID: &oid, Role: role}
		ids = append(ids, id)
	}
	return orgID, users, ids
}

func TestCreateOrganizationPromotesCreator(t *testing.T) {
	userID := domain.NewUserID(uuid.New())
	users := &fakeUserRepo{byID: map[domain.UserID]*domain.User{
		userID: {ID: userID, Role: domain.RoleMember},
	}}
	orgs := &fakeOrgRepo{}
	uc := NewCreateOrganization(orgs, users, passthroughTx{})

	org, err := uc.Execute(context.Background(), CreateOrganizationInput{UserID: userID, Name: "Initech"})
	require.NoError(t, err)
	assert.Equal(t, "Initech", org.Name)
	assert.NotEmpty(t, org.InviteCode)

	u := users.byID[userID]
	require.NotNil(t, u.OrganizationID)
	assert.Equal(t, org.ID, *u.OrganizationID)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestCreateOrganizationRejectsExistingMember(t *testing.T) {
	orgID, users, ids := orgWithUsers(domain.RoleMember)
	_ = orgID
	uc := NewCreateOrganization(&fakeOrgRepo{}, users, passthroughTx{})

	_, err := uc.Execute(context.Background(), CreateOrganizationInput{UserID: ids[0], Name: "Second"})
	assert.ErrorIs(t, err, domerrors.ErrAlreadyInOrg)
}

func TestJoinOrganizationByInviteCode(t *testing.T) {
	userID := domain.NewUserID(uuid.New())
	users := &fakeUserRepo{byID: map[domain.UserID]*domain.User{
		userID: {ID: userID, Role: domain.RoleMember},
	}}
	org := &domain.Organization{ID: domain.NewOrganizationID(uuid.New()), Name: "Initech", InviteCode: "ab12cd34ef56"}
	orgs := &fakeOrgRepo{byCode: map[string]*domain.Organization{org.InviteCode: org}}
	uc := NewJoinOrganization(orgs, users)

	joined, err := uc.Execute(context.Background(), JoinOrganizationInput{UserID: userID, InviteCode: "ab12cd34ef56"})
	require.NoError(t, err)
	assert.Equal(t, org.ID, joined.ID)
	assert.Equal(t, domain.RoleMember, users.byID[userID].Role)

	_, err = uc.Execute(context.Background(), JoinOrganizationInput{UserID: userID, InviteCode: "ab12cd34ef56"})
	assert.ErrorIs(t, err, domerrors.ErrAlreadyInOrg)
}

func TestJoinOrganizationBadCode(t *testing.T) {
	userID := domain.NewUserID(uuid.New())
	users := &fakeUserRepo{byID: map[domain.UserID]*domain.User{userID: {ID: userID}}}
	uc := NewJoinOrganization(&fakeOrgRepo{byCode: map[string]*domain.Organization{}}, users)

	_, err := uc.Execute(context.Background(), JoinOrganizationInput{UserID: userID, InviteCode: "nope"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidInviteCode)
}

func TestChangeUserRoleLastAdmin(t *testing.T) {
	orgID, users, ids := orgWithUsers(domain.RoleAdmin, domain.RoleMember)
	admin, member := ids[0], ids[1]
	scope := domain.Scope{UserID: admin, OrganizationID: orgID, Role: domain.RoleAdmin}
	uc := NewChangeUserRole(users)

	// self-demotion of the only admin is refused
	_, err := uc.Execute(context.Background(), ChangeUserRoleInput{Scope: scope, TargetUserID: admin, Role: domain.RoleMember})
	assert.ErrorIs(t, err, domerrors.ErrLastAdmin)

	// promote the member, then stepping down works
	promoted, err := uc.Execute(context.Background(), ChangeUserRoleInput{Scope: scope, TargetUserID: member, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)

	demoted, err := uc.Execute(context.Background(), ChangeUserRoleInput{Scope: scope, TargetUserID: admin, Role: domain.RoleMember})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, demoted.Role)
}

func TestChangeUserRoleForeignUser(t *testing.T) {
	orgID, users, ids := orgWithUsers(domain.RoleAdmin)
	otherID := domain.NewUserID(uuid.New())
	otherOrg := domain.NewOrganizationID(uuid.New())
	users.byID[otherID] = &domain.User{ID: otherID, OrganizationID: &otherOrg, Role: domain.RoleMember}

	scope := domain.Scope{UserID: ids[0], OrganizationID: orgID, Role: domain.RoleAdmin}
	uc := NewChangeUserRole(users)

	_, err := uc.Execute(context.Background(), ChangeUserRoleInput{Scope: scope, TargetUserID: otherID, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domerrors.ErrNotFound)
}

func TestLeaveOrganizationLastAdminBlocked(t *testing.T) {
	_, users, ids := orgWithUsers(domain.RoleAdmin, domain.RoleMember)
	uc := NewLeaveOrganization(users)

	err := uc.Execute(context.Background(), LeaveOrganizationInput{UserID: ids[0]})
	assert.ErrorIs(t, err, domerrors.ErrLastAdmin)

	// the member can always leave
	require.NoError(t, uc.Execute(context.Background(), LeaveOrganizationInput{UserID: ids[1]}))
	assert.Nil(t, users.byID[ids[1]].OrganizationID)

	// now the admin is alone and may leave too
	require.NoError(t, uc.Execute(context.Background(), LeaveOrganizationInput{UserID: ids[0]}))
	assert.Nil(t, users.byID[ids[0]].OrganizationID)
}
