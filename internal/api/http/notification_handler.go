package http

import (
	"net/http"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	TotalCount    int32                 `json:"total_count"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())
	page, pageSize := pagination(r)

	items, total, err := h.notifications.GetNotifications(r.Context(), payerID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: items, TotalCount: total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	payerID, _ := UserIDFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.notifications.MarkAsRead(r.Context(), payerID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
