package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. REJECTED is terminal; APPROVED becomes terminal once the
// assigned period's payroll marks the advance deducted.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Advance is a kasbon: a short-term salary advance repaid in full from one
// future payroll period.
type Advance struct {
	ID             string
	EmployeeRowID  string
	Amount         decimal.Decimal
	RequestMonth   int
	RequestYear    int
	Status         Status
	DeductionMonth *int
	DeductionYear  *int
	DeductedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDeductibleFor reports whether the advance should be consumed by a payroll
// run for the given period.
func (a Advance) IsDeductibleFor(month, year int) bool {
	return a.Status == StatusApproved &&
		a.DeductedAt == nil &&
		a.DeductionMonth != nil && *a.DeductionMonth == month &&
		a.DeductionYear != nil && *a.DeductionYear == year
}
