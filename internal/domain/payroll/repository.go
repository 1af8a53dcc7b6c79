package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type PayrollRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByPeriod returns nil when no record exists for the key.
	GetByPeriod(ctx context.Context, employeeRowID string, month, year int) (*Record, error)

	ListPeriod(ctx context.Context, month, year int) ([]Record, error)
	UpdateStatus(ctx context.Context, id string, status PayrollStatus) error
	Delete(ctx context.Context, id string) error

	// ExistsForEmployee reports whether any payroll history exists; used to
	// refuse employee deletion.
	ExistsForEmployee(ctx context.Context, employeeRowID string) (bool, error)
}

type AllowanceRepository interface {
	Create(ctx context.Context, a Allowance) (Allowance, error)
	ListByPeriod(ctx context.Context, employeeRowID string, month, year int) ([]Allowance, error)
	SumByPeriod(ctx context.Context, employeeRowID string, month, year int) (decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}

type DeductionRepository interface {
	Create(ctx context.Context, d Deduction) (Deduction, error)
	ListByPeriod(ctx context.Context, employeeRowID string, month, year int) ([]Deduction, error)
	SumByPeriod(ctx context.Context, employeeRowID string, month, year int) (decimal.Decimal, error)
	Delete(ctx context.Context, id string) error

	// DeleteByPayrollID removes engine-generated rows when a record is
	// reverted.
	DeleteByPayrollID(ctx context.Context, payrollID string) error
}
