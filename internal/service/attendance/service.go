package attendance

import (
	"context"
	"time"

	"github.com/palmhr/attendance-backend-go/internal/domain/attendance"
	"github.com/palmhr/attendance-backend-go/internal/domain/employee"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

// WorkdayStart is the configured start-of-day against which lateness is
// measured.
type WorkdayStart struct {
	Hour   int
	Minute int
}

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	logRepo        attendance.ApprovalLogRepository
	employeeRepo   employee.EmployeeRepository
	workdayStart   WorkdayStart
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	logRepo attendance.ApprovalLogRepository,
	employeeRepo employee.EmployeeRepository,
	workdayStart WorkdayStart,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		logRepo:        logRepo,
		employeeRepo:   employeeRepo,
		workdayStart:   workdayStart,
		now:            time.Now,
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CheckIn opens (or, after a rejection, restarts) the caller's attendance
// record for today.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	today := dateOf(now)

	var rec attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, identity.EmployeeRowID); err != nil {
			return err
		}

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, identity.EmployeeRowID, today)
		if err != nil {
			return err
		}

		if existing != nil {
			if !attendance.IsRejected(existing) {
				return attendance.ErrAlreadyCheckedIn
			}
			// Rejected day: restart the cycle on the same row. The rejection
			// note and approval stamps are cleared; the audit trail keeps the
			// full history.
			restarted := s.newDayRecord(identity.EmployeeRowID, today, now)
			restarted.ID = existing.ID
			restarted.LateReason = existing.LateReason
			restarted.LatePhotoURL = existing.LatePhotoURL
			restarted.LateSubmittedAt = existing.LateSubmittedAt
			restarted.LateApprovalStatus = existing.LateApprovalStatus
			if err := s.attendanceRepo.Update(txCtx, restarted); err != nil {
				return err
			}
			rec = restarted
			return s.logRepo.Create(txCtx, attendance.ApprovalLogEntry{
				AttendanceID: restarted.ID,
				Action:       attendance.ActionUpdate,
				ActorID:      identity.UserID,
			})
		}

		created, err := s.attendanceRepo.Create(txCtx, s.newDayRecord(identity.EmployeeRowID, today, now))
		if err != nil {
			return err
		}
		rec = created
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(rec), nil
}

func (s *AttendanceServiceImpl) newDayRecord(employeeRowID string, today, checkIn time.Time) attendance.Record {
	start := time.Date(today.Year(), today.Month(), today.Day(),
		s.workdayStart.Hour, s.workdayStart.Minute, 0, 0, today.Location())

	rec := attendance.Record{
		EmployeeRowID: employeeRowID,
		Date:          today,
		CheckIn:       &checkIn,
		IsSundayWork:  today.Weekday() == time.Sunday,
		Status:        attendance.StatusPresent,
	}

	if checkIn.After(start) {
		rec.IsLate = true
		rec.LateMinutes = int(checkIn.Sub(start).Minutes())
		rec.Status = attendance.StatusLate
	}

	return rec
}

// CheckOut closes the working part of the day.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	return s.advanceDay(ctx, func(rec *attendance.Record, now time.Time) error {
		if rec.CheckIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if rec.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		if now.Before(*rec.CheckIn) {
			return attendance.ErrCheckOutBeforeCheckIn
		}
		rec.CheckOut = &now
		return nil
	})
}

// StartOvertime begins the overtime window; the day must be fully checked
// out first.
func (s *AttendanceServiceImpl) StartOvertime(ctx context.Context) (attendance.RecordResponse, error) {
	return s.advanceDay(ctx, func(rec *attendance.Record, now time.Time) error {
		if rec.CheckIn == nil || rec.CheckOut == nil {
			return attendance.ErrNotCheckedOut
		}
		if rec.OvertimeStart != nil {
			return attendance.ErrOvertimeAlreadyStarted
		}
		rec.OvertimeStart = &now
		return nil
	})
}

// EndOvertime closes the overtime window and fixes its duration.
func (s *AttendanceServiceImpl) EndOvertime(ctx context.Context) (attendance.RecordResponse, error) {
	return s.advanceDay(ctx, func(rec *attendance.Record, now time.Time) error {
		if rec.OvertimeStart == nil {
			return attendance.ErrOvertimeNotStarted
		}
		if rec.OvertimeEnd != nil {
			return attendance.ErrOvertimeAlreadyEnded
		}
		rec.OvertimeEnd = &now
		rec.OvertimeMinutes = attendance.OvertimeDuration(*rec.OvertimeStart, now)
		return nil
	})
}

// advanceDay loads today's record inside a transaction, applies mutate, and
// persists the result.
func (s *AttendanceServiceImpl) advanceDay(ctx context.Context, mutate func(rec *attendance.Record, now time.Time) error) (attendance.RecordResponse, error) {
	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	today := dateOf(now)

	var rec attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, identity.EmployeeRowID, today)
		if err != nil {
			return err
		}
		if existing == nil {
			return attendance.ErrNotCheckedIn
		}

		if err := mutate(existing, now); err != nil {
			return err
		}

		if err := s.attendanceRepo.Update(txCtx, *existing); err != nil {
			return err
		}
		rec = *existing
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(rec), nil
}

// SubmitLateReason opens the late-arrival exception sub-flow for a LATE or
// ABSENT day.
func (s *AttendanceServiceImpl) SubmitLateReason(ctx context.Context, req attendance.SubmitLateReasonRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()

	var rec attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.attendanceRepo.GetByID(txCtx, req.AttendanceID)
		if err != nil {
			return err
		}
		if existing.Status != attendance.StatusLate && existing.Status != attendance.StatusAbsent {
			return attendance.ErrLateNotEligible
		}
		if existing.LateApprovalStatus == attendance.LateApprovalPending {
			return attendance.ErrAlreadyDecided
		}

		existing.LateReason = &req.Reason
		existing.LatePhotoURL = req.PhotoURL
		existing.LateSubmittedAt = &now
		existing.LateApprovalStatus = attendance.LateApprovalPending

		if err := s.attendanceRepo.Update(txCtx, existing); err != nil {
			return err
		}
		rec = existing

		return s.logRepo.Create(txCtx, attendance.ApprovalLogEntry{
			AttendanceID: existing.ID,
			Action:       attendance.ActionSubmit,
			ActorID:      identity.UserID,
			Note:         &req.Reason,
		})
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(rec), nil
}

// MarkAbsent records an ABSENT day for an employee; admin surface.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, employeeRowID string, date time.Time) (attendance.RecordResponse, error) {
	day := dateOf(date)

	var rec attendance.Record
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, employeeRowID); err != nil {
			return err
		}

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, employeeRowID, day)
		if err != nil {
			return err
		}
		if existing != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		created, err := s.attendanceRepo.Create(txCtx, attendance.Record{
			EmployeeRowID: employeeRowID,
			Date:          day,
			Status:        attendance.StatusAbsent,
		})
		if err != nil {
			return err
		}
		rec = created
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(rec), nil
}

// Today returns the caller's record for today (nil state maps to check-in).
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.RecordResponse, error) {
	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, identity.EmployeeRowID, dateOf(s.now()))
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec == nil {
		return attendance.RecordResponse{ActionState: string(attendance.StateCheckIn)}, nil
	}

	return attendance.ToResponse(*rec), nil
}

// ListMonth returns an employee's records for one period.
func (s *AttendanceServiceImpl) ListMonth(ctx context.Context, employeeRowID string, month, year int) ([]attendance.RecordResponse, error) {
	records, err := s.attendanceRepo.ListMonth(ctx, employeeRowID, month, year)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}
	return responses, nil
}

// History returns the audit trail for a record.
func (s *AttendanceServiceImpl) History(ctx context.Context, attendanceID string) ([]attendance.ApprovalLogEntry, error) {
	if _, err := s.attendanceRepo.GetByID(ctx, attendanceID); err != nil {
		return nil, err
	}
	return s.logRepo.ListByAttendance(ctx, attendanceID)
}
