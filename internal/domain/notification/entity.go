package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeOvertimeApproved NotificationType = "overtime_approved"
	TypeOvertimeRejected NotificationType = "overtime_rejected"
	TypeLateApproved     NotificationType = "late_reason_approved"
	TypeLateRejected     NotificationType = "late_reason_rejected"
	TypePayrollGenerated NotificationType = "payroll_generated"
	TypeAdvanceDecided   NotificationType = "advance_decided"
	TypeLoanActivated    NotificationType = "loan_activated"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
