package handlers

import (
	"net/http"
	"time"

	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

// UsersHandler handles /users/* (e.g. GET /users/me). Requires JWT auth.
type UsersHandler struct{}

func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

// Me returns the current user. Requires AuthValidator middleware.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *domain.User) *userResponse {
	var orgID *string
	if user.OrganizationID != nil {
		s := user.OrganizationID.String()
		orgID = &s
	}
	return &userResponse{
		ID:             user.ID.String(),
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		OrganizationID: orgID,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
	}
}
