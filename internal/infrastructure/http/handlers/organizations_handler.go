package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/organization"
	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

type OrganizationsHandler struct {
	create     *organization.CreateOrganization
	join       *organization.JoinOrganization
	leave      *organization.LeaveOrganization
	changeRole *organization.ChangeUserRole
	orgs       ports.OrganizationRepository
	users      ports.UserRepository
	validate   *validator.Validate
	log        zerolog.Logger
}

func NewOrganizationsHandler(
	create *organization.CreateOrganization,
	join *organization.JoinOrganization,
	leave *organization.LeaveOrganization,
	changeRole *organization.ChangeUserRole,
	orgs ports.OrganizationRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *OrganizationsHandler {
	return &OrganizationsHandler{
		create:     create,
		join:       join,
		leave:      leave,
		changeRole: changeRole,
		orgs:       orgs,
		users:      users,
		validate:   validator.New(),
		log:        log,
	}
}

type organizationResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"inviteCode,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

func toOrganizationResponse(org *domain.Organization, includeInvite bool) organizationResponse {
	resp := organizationResponse{
		ID:        org.ID.String(),
		Name:      org.Name,
		CreatedAt: org.CreatedAt.Format(time.RFC3339),
	}
	if includeInvite {
		resp.InviteCode = org.InviteCode
	}
	return resp
}

// Create handles POST /organizations. The creator becomes the first admin.
func (h *OrganizationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	var body struct {
		Name string `json:"name" validate:"required,max=200"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "organization name is required")
		return
	}
	org, err := h.create.Execute(r.Context(), organization.CreateOrganizationInput{
		UserID: user.ID,
		Name:   SanitizeName(body.Name),
	})
	if err != nil {
		if err == domerrors.ErrAlreadyInOrg {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("organization create failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toOrganizationResponse(org, true))
}

// Me handles GET /organizations/me. Admins also see the invite code.
func (h *OrganizationsHandler) Me(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusNotFound, "", "user is not in an organization")
		return
	}
	org, err := h.orgs.GetByID(r.Context(), scope.OrganizationID)
	if err != nil {
		h.log.Error().Err(err).Msg("organization lookup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if org == nil {
		writeErr(w, http.StatusNotFound, "", "not found")
		return
	}
	writeJSON(w, http.StatusOK, toOrganizationResponse(org, scope.IsAdmin()))
}

// Join handles POST /organizations/join.
func (h *OrganizationsHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	var body struct {
		InviteCode string `json:"inviteCode" validate:"required,max=64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invite code is required")
		return
	}
	org, err := h.join.Execute(r.Context(), organization.JoinOrganizationInput{
		UserID:     user.ID,
		InviteCode: body.InviteCode,
	})
	if err != nil {
		if err == domerrors.ErrAlreadyInOrg || err == domerrors.ErrInvalidInviteCode {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("organization join failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":        "Successfully joined organization.",
		"organizationId": org.ID.String(),
	})
}

// Leave handles POST /organizations/leave.
func (h *OrganizationsHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	err := h.leave.Execute(r.Context(), organization.LeaveOrganizationInput{UserID: user.ID})
	if err != nil {
		if err == domerrors.ErrNoOrganization || err == domerrors.ErrLastAdmin {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("organization leave failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully left organization."})
}

// ListUsers handles GET /organizations/users. Admin only.
func (h *OrganizationsHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	users, err := h.users.ListByOrganization(r.Context(), scope.OrganizationID)
	if err != nil {
		h.log.Error().Err(err).Msg("organization users listing failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateUserRole handles PATCH /organizations/users. Admin only.
func (h *OrganizationsHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	scope, _ := middleware.ScopeFromContext(r.Context())
	var body struct {
		UserID string `json:"userId" validate:"required,uuid"`
		Role   string `json:"role" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "user id and a valid role are required")
		return
	}
	role := domain.Role(body.Role)
	if !role.Valid() {
		writeErr(w, http.StatusBadRequest, "", "user id and a valid role are required")
		return
	}
	targetID, err := uuid.Parse(body.UserID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid user id")
		return
	}
	updated, err := h.changeRole.Execute(r.Context(), organization.ChangeUserRoleInput{
		Scope:        scope,
		TargetUserID: domain.NewUserID(targetID),
		Role:         role,
	})
	if err != nil {
		if err == domerrors.ErrNotFound || err == domerrors.ErrLastAdmin {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("role update failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}
