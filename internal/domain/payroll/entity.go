package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Standard working assumptions used by the computation engine.
const (
	StandardWorkDaysPerMonth = 22
	StandardWorkHoursPerDay  = 8
)

// OvertimeMultiplier is the standard 1.5x premium applied to approved
// overtime hours.
var OvertimeMultiplier = decimal.NewFromFloat(1.5)

// DeductionType enum. The taxonomy is fixed and small on purpose.
type DeductionType string

const (
	DeductionAbsence        DeductionType = "ABSENCE"
	DeductionLate           DeductionType = "LATE"
	DeductionBPJSHealth     DeductionType = "BPJS_HEALTH"
	DeductionBPJSEmployment DeductionType = "BPJS_EMPLOYMENT"
	DeductionAdvance        DeductionType = "ADVANCE"
	DeductionSoftLoan       DeductionType = "SOFT_LOAN"
	DeductionOther          DeductionType = "OTHER"
)

func (t DeductionType) IsValid() bool {
	switch t {
	case DeductionAbsence, DeductionLate, DeductionBPJSHealth, DeductionBPJSEmployment,
		DeductionAdvance, DeductionSoftLoan, DeductionOther:
		return true
	}
	return false
}

// Allowance is an (employee, period, type, amount) tuple, created by admin
// action. Immutable once the period's payroll record exists.
type Allowance struct {
	ID            string
	EmployeeRowID string
	Month         int
	Year          int
	Type          string
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// Deduction mirrors Allowance. Rows carrying a PayrollID were generated by
// the engine and are removed again when the record is reverted. SOFT_LOAN
// rows additionally carry the loan they were taken from, one row per loan,
// so a revert can hand each loan back exactly what it paid.
type Deduction struct {
	ID            string
	EmployeeRowID string
	Month         int
	Year          int
	Type          DeductionType
	Amount        decimal.Decimal
	PayrollID     *string
	LoanID        *string
	CreatedAt     time.Time
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending   PayrollStatus = "PENDING"
	PayrollStatusPaid      PayrollStatus = "PAID"
	PayrollStatusCancelled PayrollStatus = "CANCELLED"
)

// Record is the generated payroll result, unique per (employee, month, year).
type Record struct {
	ID              string
	EmployeeRowID   string
	Month           int
	Year            int
	BaseSalary      decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	OvertimeHours   decimal.Decimal
	OvertimeAmount  decimal.Decimal
	DaysPresent     int
	DaysAbsent      int
	BPJSHealth      decimal.Decimal
	BPJSEmployment  decimal.Decimal
	LateDeduction   decimal.Decimal
	NetSalary       decimal.Decimal
	Status          PayrollStatus
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
