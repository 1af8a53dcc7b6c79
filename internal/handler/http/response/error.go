package response

import (
	"errors"
	"net/http"

	"github.com/palmhr/attendance-backend-go/internal/domain/advance"
	"github.com/palmhr/attendance-backend-go/internal/domain/attendance"
	"github.com/palmhr/attendance-backend-go/internal/domain/employee"
	"github.com/palmhr/attendance-backend-go/internal/domain/payroll"
	"github.com/palmhr/attendance-backend-go/internal/domain/softloan"
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
	"github.com/palmhr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth and authorization
	case errors.Is(err, authctx.ErrMissingIdentity):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrSupervisorRequired),
		errors.Is(err, user.ErrRoleNotPermitted):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee identifier already exists")
	case errors.Is(err, employee.ErrSameOrganization):
		Conflict(w, "Employee already belongs to this organization")
	case errors.Is(err, employee.ErrHasPayrollHistory):
		Conflict(w, "Employee has payroll history and cannot be deleted")
	case errors.Is(err, employee.ErrWageBelowMinimum):
		BadRequest(w, "Wage is below the configured minimum", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrNotCheckedOut),
		errors.Is(err, attendance.ErrOvertimeAlreadyStarted),
		errors.Is(err, attendance.ErrOvertimeNotStarted),
		errors.Is(err, attendance.ErrOvertimeAlreadyEnded),
		errors.Is(err, attendance.ErrCheckOutBeforeCheckIn),
		errors.Is(err, attendance.ErrAlreadyDecided),
		errors.Is(err, attendance.ErrOvertimeIncomplete),
		errors.Is(err, attendance.ErrNotPendingLate):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrLateNotEligible):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrAllowanceNotFound):
		NotFound(w, "Allowance not found")
	case errors.Is(err, payroll.ErrDeductionNotFound):
		NotFound(w, "Deduction not found")
	case errors.Is(err, payroll.ErrPeriodAlreadyExists),
		errors.Is(err, payroll.ErrCannotDeletePaid),
		errors.Is(err, payroll.ErrNotPending),
		errors.Is(err, payroll.ErrPeriodFinalized):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Advance and loan domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrNotPending),
		errors.Is(err, advance.ErrAlreadyDeducted):
		Conflict(w, err.Error())
	case errors.Is(err, softloan.ErrLoanNotFound):
		NotFound(w, "Loan not found")
	case errors.Is(err, softloan.ErrNotPending),
		errors.Is(err, softloan.ErrNotActive):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
