package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/palmhr/attendance-backend-go/internal/domain/attendance"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_row_id, date, check_in, check_out, overtime_start, overtime_end,
	overtime_minutes, is_late, late_minutes, is_sunday_work,
	is_overtime_approved, is_sunday_work_approved, approved_by, approved_at, rejection_note,
	late_reason, late_photo_url, late_submitted_at, late_approval_status,
	status, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeRowID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.OvertimeStart, &rec.OvertimeEnd,
		&rec.OvertimeMinutes, &rec.IsLate, &rec.LateMinutes, &rec.IsSundayWork,
		&rec.IsOvertimeApproved, &rec.IsSundayWorkApproved, &rec.ApprovedBy, &rec.ApprovedAt, &rec.RejectionNote,
		&rec.LateReason, &rec.LatePhotoURL, &rec.LateSubmittedAt, &rec.LateApprovalStatus,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_row_id, date, check_in, check_out, overtime_start, overtime_end,
			overtime_minutes, is_late, late_minutes, is_sunday_work,
			is_overtime_approved, is_sunday_work_approved, late_approval_status, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeRowID,
		rec.Date,
		rec.CheckIn,
		rec.CheckOut,
		rec.OvertimeStart,
		rec.OvertimeEnd,
		rec.OvertimeMinutes,
		rec.IsLate,
		rec.LateMinutes,
		rec.IsSundayWork,
		rec.IsOvertimeApproved,
		rec.IsSundayWorkApproved,
		rec.LateApprovalStatus,
		rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + ` FROM attendances WHERE id = $1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeRowID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances
		WHERE employee_row_id = $1 AND date = $2
		LIMIT 1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeRowID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record for the day yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &rec, nil
}

// ListMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListMonth(ctx context.Context, employeeRowID string, month, year int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances
		WHERE employee_row_id = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
		ORDER BY date`

	rows, err := q.Query(ctx, query, employeeRowID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list month attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $2, check_out = $3, overtime_start = $4, overtime_end = $5,
			overtime_minutes = $6, is_late = $7, late_minutes = $8, is_sunday_work = $9,
			is_overtime_approved = $10, is_sunday_work_approved = $11,
			approved_by = $12, approved_at = $13, rejection_note = $14,
			late_reason = $15, late_photo_url = $16, late_submitted_at = $17, late_approval_status = $18,
			status = $19, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID,
		rec.CheckIn, rec.CheckOut, rec.OvertimeStart, rec.OvertimeEnd,
		rec.OvertimeMinutes, rec.IsLate, rec.LateMinutes, rec.IsSundayWork,
		rec.IsOvertimeApproved, rec.IsSundayWorkApproved,
		rec.ApprovedBy, rec.ApprovedAt, rec.RejectionNote,
		rec.LateReason, rec.LatePhotoURL, rec.LateSubmittedAt, rec.LateApprovalStatus,
		rec.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

type approvalLogRepository struct {
	db *database.DB
}

func NewApprovalLogRepository(db *database.DB) attendance.ApprovalLogRepository {
	return &approvalLogRepository{db: db}
}

// Create implements attendance.ApprovalLogRepository.
func (r *approvalLogRepository) Create(ctx context.Context, entry attendance.ApprovalLogEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_logs (attendance_id, action, actor_id, note)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, entry.AttendanceID, entry.Action, entry.ActorID, entry.Note); err != nil {
		return fmt.Errorf("failed to append approval log: %w", err)
	}

	return nil
}

// ListByAttendance implements attendance.ApprovalLogRepository.
func (r *approvalLogRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.ApprovalLogEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, action, actor_id, note, created_at
		FROM approval_logs
		WHERE attendance_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval logs: %w", err)
	}
	defer rows.Close()

	var entries []attendance.ApprovalLogEntry
	for rows.Next() {
		var e attendance.ApprovalLogEntry
		if err := rows.Scan(&e.ID, &e.AttendanceID, &e.Action, &e.ActorID, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan approval log: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
