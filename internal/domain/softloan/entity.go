package softloan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. PENDING loans are not yet repaying; ACTIVE loans are consumed
// by payroll runs until remaining reaches zero.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

// SoftLoan is a longer-term loan repaid via fixed monthly payroll deductions.
type SoftLoan struct {
	ID              string
	EmployeeRowID   string
	TotalAmount     decimal.Decimal
	MonthlyAmount   decimal.Decimal
	RemainingAmount decimal.Decimal
	DurationMonths  int
	Status          Status
	StartMonth      int
	StartYear       int
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CoversPeriod reports whether the loan's repayment schedule includes the
// given period.
func (l SoftLoan) CoversPeriod(month, year int) bool {
	start := l.StartYear*12 + (l.StartMonth - 1)
	at := year*12 + (month - 1)
	return at >= start && at < start+l.DurationMonths
}

// InstallmentFor returns the amount a payroll run for the period should
// deduct: min(monthlyAmount, remainingAmount), zero when the loan is not
// active or the period falls outside the schedule.
func (l SoftLoan) InstallmentFor(month, year int) decimal.Decimal {
	if l.Status != StatusActive || !l.CoversPeriod(month, year) {
		return decimal.Zero
	}
	if l.RemainingAmount.LessThan(l.MonthlyAmount) {
		return l.RemainingAmount
	}
	return l.MonthlyAmount
}
