package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
	"github.com/NarenDawar/ai-governance-hub/internal/domain"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

// unreadNotificationLimit caps the inbox listing.
const unreadNotificationLimit = 20

type NotificationsHandler struct {
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

func NewNotificationsHandler(notifications ports.NotificationRepository, log zerolog.Logger) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications, log: log}
}

type notificationResponse struct {
	ID        string  `json:"id"`
	Message   string  `json:"message"`
	AssetID   *string `json:"assetId"`
	IsRead    bool    `json:"isRead"`
	CreatedAt string  `json:"createdAt"`
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	var assetID *string
	if n.AssetID != nil {
		s := n.AssetID.String()
		assetID = &s
	}
	return notificationResponse{
		ID:        n.ID.String(),
		Message:   n.Message,
		AssetID:   assetID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

// ListUnread handles GET /notifications, newest first, capped.
func (h *NotificationsHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "not authenticated")
		return
	}
	list, err := h.notifications.ListUnread(r.Context(), user.ID, unreadNotificationLimit)
	if err != nil {
		h.log.Error().Err(err).Msg("notification listing failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	writeJSON(w, http.StatusOK, out)
}

// MarkAllRead handles PATCH /notifications for the caller's own inbox.
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "not authenticated")
		return
	}
	if err := h.notifications.MarkAllRead(r.Context(), user.ID); err != nil {
		h.log.Error().Err(err).Msg("mark notifications read failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read."})
}
