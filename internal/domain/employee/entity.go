package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompensationMode enum
type CompensationMode string

const (
	// ModeShift employees earn a fixed monthly base salary.
	ModeShift CompensationMode = "SHIFT"
	// ModeNonShift employees are paid from an hourly rate and days present.
	ModeNonShift CompensationMode = "NON_SHIFT"
)

func (m CompensationMode) IsValid() bool {
	return m == ModeShift || m == ModeNonShift
}

type Employee struct {
	ID                 string
	EmployeeID         string // externally visible, "CTU-001" form
	OrganizationCode   string
	Name               string
	CompensationMode   CompensationMode
	MonthlySalary      decimal.Decimal // SHIFT base
	HourlyRate         decimal.Decimal // NON_SHIFT rate
	BPJSHealthRate     decimal.Decimal // fraction of base, e.g. 0.01
	BPJSEmploymentRate decimal.Decimal
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EmployeeIDLog records an identifier re-issuance on organization transfer.
// Rows are append-only and survive for as long as the employee row does.
type EmployeeIDLog struct {
	ID            string
	EmployeeRowID string
	OldEmployeeID string
	NewEmployeeID string
	Reason        string
	CreatedAt     time.Time
}
