package attendance

import (
	"time"
)

// Status enum for a day's record.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusAbsent  Status = "ABSENT"
)

// LateApprovalStatus enum for the late-arrival exception sub-flow.
type LateApprovalStatus string

const (
	LateApprovalNone     LateApprovalStatus = ""
	LateApprovalPending  LateApprovalStatus = "PENDING_LATE_APPROVAL"
	LateApprovalApproved LateApprovalStatus = "LATE_APPROVED"
	LateApprovalRejected LateApprovalStatus = "LATE_REJECTED"
)

// Record is one employee's attendance for one calendar day. The day's
// progression is carried by the four nullable timestamps in strict order:
// CheckIn, CheckOut, OvertimeStart, OvertimeEnd.
type Record struct {
	ID            string
	EmployeeRowID string
	Date          time.Time
	CheckIn       *time.Time
	CheckOut      *time.Time
	OvertimeStart *time.Time
	OvertimeEnd   *time.Time

	OvertimeMinutes int
	IsLate          bool
	LateMinutes     int
	IsSundayWork    bool

	IsOvertimeApproved   bool
	IsSundayWorkApproved bool
	ApprovedBy           *string
	ApprovedAt           *time.Time
	RejectionNote        *string

	LateReason         *string
	LatePhotoURL       *string
	LateSubmittedAt    *time.Time
	LateApprovalStatus LateApprovalStatus

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OvertimeDuration returns overtime length in whole minutes, clamped to zero
// when the end precedes the start.
func OvertimeDuration(start, end time.Time) int {
	minutes := int(end.Sub(start).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// LogAction enum for the approval audit trail.
type LogAction string

const (
	ActionSubmit  LogAction = "submit"
	ActionApprove LogAction = "approve"
	ActionReject  LogAction = "reject"
	ActionUpdate  LogAction = "update"
)

// ApprovalLogEntry is an append-only audit row. Entries are never updated or
// deleted except when the owning employee row is removed.
type ApprovalLogEntry struct {
	ID           string
	AttendanceID string
	Action       LogAction
	ActorID      string
	Note         *string
	CreatedAt    time.Time
}
