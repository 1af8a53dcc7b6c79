package advance

import "context"

type AdvanceRepository interface {
	Create(ctx context.Context, adv Advance) (Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	ListByEmployee(ctx context.Context, employeeRowID string) ([]Advance, error)

	// ListDeductibleFor returns APPROVED, not-yet-deducted advances assigned
	// to the given period.
	ListDeductibleFor(ctx context.Context, employeeRowID string, month, year int) ([]Advance, error)

	Update(ctx context.Context, adv Advance) error

	// MarkDeducted stamps deducted_at; ClearDeducted reverts it when a
	// payroll record is deleted.
	MarkDeducted(ctx context.Context, id string) error
	ClearDeducted(ctx context.Context, id string) error

	// ListDeductedByPeriod returns advances consumed by the given period's
	// payroll run, for reversal.
	ListDeductedByPeriod(ctx context.Context, employeeRowID string, month, year int) ([]Advance, error)
}
