package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/palmhr/attendance-backend-go/internal/pkg/validator"
)

type GeneratePayrollRequest struct {
	EmployeeRowID string `json:"employee_id"`
	Month         int    `json:"month"`
	Year          int    `json:"year"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeRowID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.Month, r.Year) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year >= 1900"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLedgerEntryRequest struct {
	EmployeeRowID string          `json:"employee_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
}

// Validate checks the shared shape of allowance and deduction entries;
// deduction entries additionally require a known type.
func (r *CreateLedgerEntryRequest) Validate(isDeduction bool) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeRowID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.Month, r.Year) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year >= 1900"})
	}
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "is required"})
	} else if isDeduction && !DeductionType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "is not a known deduction type"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID              string          `json:"id"`
	EmployeeRowID   string          `json:"employee_id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	OvertimeAmount  decimal.Decimal `json:"overtime_amount"`
	DaysPresent     int             `json:"days_present"`
	DaysAbsent      int             `json:"days_absent"`
	BPJSHealth      decimal.Decimal `json:"bpjs_health"`
	BPJSEmployment  decimal.Decimal `json:"bpjs_employment"`
	LateDeduction   decimal.Decimal `json:"late_deduction"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	Status          string          `json:"status"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
}

func ToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:              rec.ID,
		EmployeeRowID:   rec.EmployeeRowID,
		Month:           rec.Month,
		Year:            rec.Year,
		BaseSalary:      rec.BaseSalary,
		TotalAllowances: rec.TotalAllowances,
		TotalDeductions: rec.TotalDeductions,
		OvertimeHours:   rec.OvertimeHours,
		OvertimeAmount:  rec.OvertimeAmount,
		DaysPresent:     rec.DaysPresent,
		DaysAbsent:      rec.DaysAbsent,
		BPJSHealth:      rec.BPJSHealth,
		BPJSEmployment:  rec.BPJSEmployment,
		LateDeduction:   rec.LateDeduction,
		NetSalary:       rec.NetSalary,
		Status:          string(rec.Status),
		PaidAt:          rec.PaidAt,
	}
}
