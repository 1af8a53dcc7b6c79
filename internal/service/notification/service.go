package notification

import (
	"context"
	"log/slog"

	"github.com/palmhr/attendance-backend-go/internal/domain/notification"
)

type NotificationServiceImpl struct {
	repo   notification.Repository
	logger *slog.Logger
}

func NewNotificationService(repo notification.Repository, logger *slog.Logger) notification.Service {
	return &NotificationServiceImpl{repo: repo, logger: logger}
}

// Notify implements notification.Service. Callers invoke it after their own
// transaction has committed; a failed insert is logged and dropped so it can
// never undo the work that triggered it.
func (s *NotificationServiceImpl) Notify(ctx context.Context, recipientID string, ntype notification.NotificationType, title, message string) {
	n := &notification.Notification{
		RecipientID: recipientID,
		Type:        ntype,
		Title:       title,
		Message:     message,
	}

	if err := s.repo.Create(context.WithoutCancel(ctx), n); err != nil {
		s.logger.Warn("notification dropped",
			slog.String("recipient_id", recipientID),
			slog.String("type", string(ntype)),
			slog.String("error", err.Error()),
		)
	}
}

func (s *NotificationServiceImpl) List(ctx context.Context, userID string, unreadOnly bool) ([]*notification.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, unreadOnly)
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, ids []string, userID string) error {
	return s.repo.MarkAsRead(ctx, ids, userID)
}
