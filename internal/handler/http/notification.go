package http

import (
	"encoding/json"
	"net/http"

	"github.com/palmhr/attendance-backend-go/internal/domain/notification"
	"github.com/palmhr/attendance-backend-go/internal/handler/http/response"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
)

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{notifService: notifService}
}

func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := authctx.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	unreadOnly := getBoolQueryParam(r, "unread_only", false)

	notifications, err := h.notifService.List(r.Context(), identity.UserID, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notifications)
}

func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	identity, err := authctx.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	count, err := h.notifService.UnreadCount(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"unread_count": count})
}

type markAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	identity, err := authctx.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req markAsReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if len(req.NotificationIDs) == 0 {
		response.BadRequest(w, "notification_ids is required", nil)
		return
	}

	if err := h.notifService.MarkRead(r.Context(), req.NotificationIDs, identity.UserID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notifications marked as read", nil)
}
