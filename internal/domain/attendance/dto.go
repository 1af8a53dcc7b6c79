package attendance

import (
	"time"

	"github.com/palmhr/attendance-backend-go/internal/pkg/validator"
)

// minLateReasonLength is enforced at submission, before any transaction opens.
const minLateReasonLength = 20

type SubmitLateReasonRequest struct {
	AttendanceID string  `json:"attendance_id"`
	Reason       string  `json:"reason"`
	PhotoURL     *string `json:"photo_url,omitempty"`
}

func (r *SubmitLateReasonRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{Field: "attendance_id", Message: "is required"})
	}
	if !validator.HasMinLength(r.Reason, minLateReasonLength) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "must be at least 20 characters"})
	}
	if r.PhotoURL != nil && validator.IsEmpty(*r.PhotoURL) {
		errs = append(errs, validator.ValidationError{Field: "photo_url", Message: "must not be empty when provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	AttendanceID string  `json:"attendance_id"`
	Note         *string `json:"note,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{Field: "attendance_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID                   string     `json:"id"`
	EmployeeRowID        string     `json:"employee_id"`
	Date                 string     `json:"date"`
	CheckIn              *time.Time `json:"check_in,omitempty"`
	CheckOut             *time.Time `json:"check_out,omitempty"`
	OvertimeStart        *time.Time `json:"overtime_start,omitempty"`
	OvertimeEnd          *time.Time `json:"overtime_end,omitempty"`
	OvertimeMinutes      int        `json:"overtime_minutes"`
	IsLate               bool       `json:"is_late"`
	LateMinutes          int        `json:"late_minutes"`
	IsSundayWork         bool       `json:"is_sunday_work"`
	IsOvertimeApproved   bool       `json:"is_overtime_approved"`
	IsSundayWorkApproved bool       `json:"is_sunday_work_approved"`
	RejectionNote        *string    `json:"rejection_note,omitempty"`
	LateApprovalStatus   string     `json:"late_approval_status,omitempty"`
	Status               string     `json:"status"`
	ActionState          string     `json:"action_state"`
}

func ToResponse(rec Record) RecordResponse {
	r := rec
	return RecordResponse{
		ID:                   rec.ID,
		EmployeeRowID:        rec.EmployeeRowID,
		Date:                 rec.Date.Format("2006-01-02"),
		CheckIn:              rec.CheckIn,
		CheckOut:             rec.CheckOut,
		OvertimeStart:        rec.OvertimeStart,
		OvertimeEnd:          rec.OvertimeEnd,
		OvertimeMinutes:      rec.OvertimeMinutes,
		IsLate:               rec.IsLate,
		LateMinutes:          rec.LateMinutes,
		IsSundayWork:         rec.IsSundayWork,
		IsOvertimeApproved:   rec.IsOvertimeApproved,
		IsSundayWorkApproved: rec.IsSundayWorkApproved,
		RejectionNote:        rec.RejectionNote,
		LateApprovalStatus:   string(rec.LateApprovalStatus),
		Status:               string(rec.Status),
		ActionState:          string(ActionState(&r)),
	}
}
