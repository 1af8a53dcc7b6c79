package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for daily attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate returns nil when no record exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeRowID string, date time.Time) (*Record, error)

	// ListMonth returns all records for an employee within a payroll period.
	ListMonth(ctx context.Context, employeeRowID string, month, year int) ([]Record, error)

	Update(ctx context.Context, rec Record) error
}

// ApprovalLogRepository is append-only; entries are only removed by the
// employee deletion cascade.
type ApprovalLogRepository interface {
	Create(ctx context.Context, entry ApprovalLogEntry) error
	ListByAttendance(ctx context.Context, attendanceID string) ([]ApprovalLogEntry, error)
}
