package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/palmhr/attendance-backend-go/internal/domain/attendance"
	"github.com/palmhr/attendance-backend-go/internal/domain/notification"
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type ApprovalServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	logRepo        attendance.ApprovalLogRepository
	userRepo       user.UserRepository
	notifier       notification.Service
}

func NewApprovalService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	logRepo attendance.ApprovalLogRepository,
	userRepo user.UserRepository,
	notifier notification.Service,
) *ApprovalServiceImpl {
	return &ApprovalServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		logRepo:        logRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// ApproveOvertime stamps an approval on a completed overtime window.
func (s *ApprovalServiceImpl) ApproveOvertime(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error) {
	return s.decideOvertime(ctx, req, true)
}

// RejectOvertime stamps a rejection; the employee can restart the day's cycle
// afterwards.
func (s *ApprovalServiceImpl) RejectOvertime(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error) {
	return s.decideOvertime(ctx, req, false)
}

func (s *ApprovalServiceImpl) decideOvertime(ctx context.Context, req attendance.DecisionRequest, approve bool) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := time.Now()

	var rec attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		// Re-read inside the transaction; the record may have been decided or
		// resubmitted since the client last saw it.
		current, err := s.attendanceRepo.GetByID(txCtx, req.AttendanceID)
		if err != nil {
			return err
		}

		if current.OvertimeStart == nil || current.OvertimeEnd == nil {
			return attendance.ErrOvertimeIncomplete
		}
		if current.ApprovedAt != nil {
			return attendance.ErrAlreadyDecided
		}
		if !attendance.CanDecideOvertime(identity.Role, current) {
			return user.ErrRoleNotPermitted
		}

		current.ApprovedBy = &identity.UserID
		current.ApprovedAt = &now
		if approve {
			current.IsOvertimeApproved = true
			if current.IsSundayWork {
				current.IsSundayWorkApproved = true
			}
			current.RejectionNote = nil
		} else {
			current.IsOvertimeApproved = false
			current.IsSundayWorkApproved = false
			note := "overtime rejected"
			if req.Note != nil && *req.Note != "" {
				note = *req.Note
			}
			current.RejectionNote = &note
		}

		if err := s.attendanceRepo.Update(txCtx, current); err != nil {
			return err
		}
		rec = current

		action := attendance.ActionApprove
		if !approve {
			action = attendance.ActionReject
		}
		return s.logRepo.Create(txCtx, attendance.ApprovalLogEntry{
			AttendanceID: current.ID,
			Action:       action,
			ActorID:      identity.UserID,
			Note:         req.Note,
		})
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifyEmployee(ctx, rec, approve,
		notification.TypeOvertimeApproved, notification.TypeOvertimeRejected,
		fmt.Sprintf("Your overtime of %d minutes on %s was", rec.OvertimeMinutes, rec.Date.Format("2006-01-02")))

	return attendance.ToResponse(rec), nil
}

// ApproveLateReason accepts a pending late-arrival justification.
func (s *ApprovalServiceImpl) ApproveLateReason(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error) {
	return s.decideLateReason(ctx, req, true)
}

// RejectLateReason declines a pending late-arrival justification.
func (s *ApprovalServiceImpl) RejectLateReason(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error) {
	return s.decideLateReason(ctx, req, false)
}

func (s *ApprovalServiceImpl) decideLateReason(ctx context.Context, req attendance.DecisionRequest, approve bool) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if !attendance.CanDecideLateReason(identity.Role) {
		return attendance.RecordResponse{}, user.ErrRoleNotPermitted
	}

	var rec attendance.Record
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.attendanceRepo.GetByID(txCtx, req.AttendanceID)
		if err != nil {
			return err
		}

		if current.LateApprovalStatus != attendance.LateApprovalPending {
			return attendance.ErrNotPendingLate
		}

		if approve {
			current.LateApprovalStatus = attendance.LateApprovalApproved
			// An accepted justification converts the day to a regular present
			// day for payroll purposes.
			current.Status = attendance.StatusPresent
		} else {
			current.LateApprovalStatus = attendance.LateApprovalRejected
		}

		if err := s.attendanceRepo.Update(txCtx, current); err != nil {
			return err
		}
		rec = current

		action := attendance.ActionApprove
		if !approve {
			action = attendance.ActionReject
		}
		return s.logRepo.Create(txCtx, attendance.ApprovalLogEntry{
			AttendanceID: current.ID,
			Action:       action,
			ActorID:      identity.UserID,
			Note:         req.Note,
		})
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifyEmployee(ctx, rec, approve,
		notification.TypeLateApproved, notification.TypeLateRejected,
		fmt.Sprintf("Your late arrival reason for %s was", rec.Date.Format("2006-01-02")))

	return attendance.ToResponse(rec), nil
}

// notifyEmployee runs after the decision has committed; a missing user account
// or a failed insert never affects the decision itself.
func (s *ApprovalServiceImpl) notifyEmployee(ctx context.Context, rec attendance.Record, approve bool, approvedType, rejectedType notification.NotificationType, prefix string) {
	account, err := s.userRepo.GetByEmployeeRowID(ctx, rec.EmployeeRowID)
	if err != nil {
		return
	}

	ntype := approvedType
	title := "Request approved"
	verdict := "approved"
	if !approve {
		ntype = rejectedType
		title = "Request rejected"
		verdict = "rejected"
	}

	s.notifier.Notify(ctx, account.ID, ntype, title, fmt.Sprintf("%s %s.", prefix, verdict))
}
