package notification

import "context"

// Service is the fire-and-forget notification sink. Notify must never fail a
// caller: errors are logged and swallowed, and the write happens outside the
// caller's transaction.
type Service interface {
	Notify(ctx context.Context, recipientID string, ntype NotificationType, title, message string)
	List(ctx context.Context, userID string, unreadOnly bool) ([]*Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, ids []string, userID string) error
}
