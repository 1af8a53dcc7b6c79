package softloan

import (
	"context"

	"github.com/shopspring/decimal"
)

type SoftLoanRepository interface {
	Create(ctx context.Context, loan SoftLoan) (SoftLoan, error)
	GetByID(ctx context.Context, id string) (SoftLoan, error)
	ListByEmployee(ctx context.Context, employeeRowID string) ([]SoftLoan, error)

	// ListActiveFor returns ACTIVE loans whose schedule covers the period.
	ListActiveFor(ctx context.Context, employeeRowID string, month, year int) ([]SoftLoan, error)

	Update(ctx context.Context, loan SoftLoan) error

	// ApplyInstallment decrements remaining_amount and flips the loan to
	// COMPLETED when it reaches zero. RestoreInstallment is the exact inverse,
	// used when a payroll record is deleted.
	ApplyInstallment(ctx context.Context, id string, amount decimal.Decimal) error
	RestoreInstallment(ctx context.Context, id string, amount decimal.Decimal) error
}
