package payroll

import "errors"

var (
	ErrRecordNotFound      = errors.New("payroll record not found")
	ErrPeriodAlreadyExists = errors.New("payroll record already exists for this period")
	ErrInvalidPeriod       = errors.New("invalid payroll period")
	ErrCannotDeletePaid    = errors.New("cannot delete a paid payroll record")
	ErrNotPending          = errors.New("payroll record is not pending")
	ErrPeriodFinalized     = errors.New("period already has a payroll record; ledger entry is immutable")
	ErrAllowanceNotFound   = errors.New("allowance not found")
	ErrDeductionNotFound   = errors.New("deduction not found")
)
