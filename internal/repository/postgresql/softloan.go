package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/palmhr/attendance-backend-go/internal/domain/softloan"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type softLoanRepository struct {
	db *database.DB
}

func NewSoftLoanRepository(db *database.DB) softloan.SoftLoanRepository {
	return &softLoanRepository{db: db}
}

const softLoanColumns = `
	id, employee_row_id, total_amount, monthly_amount, remaining_amount,
	duration_months, status, start_month, start_year, completed_at, created_at, updated_at`

func scanSoftLoan(row pgx.Row) (softloan.SoftLoan, error) {
	var l softloan.SoftLoan
	err := row.Scan(
		&l.ID, &l.EmployeeRowID, &l.TotalAmount, &l.MonthlyAmount, &l.RemainingAmount,
		&l.DurationMonths, &l.Status, &l.StartMonth, &l.StartYear, &l.CompletedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements softloan.SoftLoanRepository.
func (r *softLoanRepository) Create(ctx context.Context, loan softloan.SoftLoan) (softloan.SoftLoan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO soft_loans (
			employee_row_id, total_amount, monthly_amount, remaining_amount,
			duration_months, status, start_month, start_year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		loan.EmployeeRowID, loan.TotalAmount, loan.MonthlyAmount, loan.RemainingAmount,
		loan.DurationMonths, loan.Status, loan.StartMonth, loan.StartYear,
	).Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		return softloan.SoftLoan{}, fmt.Errorf("failed to create soft loan: %w", err)
	}

	return loan, nil
}

// GetByID implements softloan.SoftLoanRepository.
func (r *softLoanRepository) GetByID(ctx context.Context, id string) (softloan.SoftLoan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + softLoanColumns + ` FROM soft_loans WHERE id = $1`

	l, err := scanSoftLoan(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return softloan.SoftLoan{}, softloan.ErrLoanNotFound
		}
		return softloan.SoftLoan{}, fmt.Errorf("failed to get soft loan: %w", err)
	}

	return l, nil
}

// ListByEmployee implements softloan.SoftLoanRepository.
func (r *softLoanRepository) ListByEmployee(ctx context.Context, employeeRowID string) ([]softloan.SoftLoan, error) {
	return r.list(ctx,
		`SELECT`+softLoanColumns+` FROM soft_loans WHERE employee_row_id = $1 ORDER BY created_at DESC`,
		employeeRowID)
}

// ListActiveFor implements softloan.SoftLoanRepository. The schedule window
// check mirrors SoftLoan.CoversPeriod using month arithmetic.
func (r *softLoanRepository) ListActiveFor(ctx context.Context, employeeRowID string, month, year int) ([]softloan.SoftLoan, error) {
	return r.list(ctx,
		`SELECT`+softLoanColumns+`
		 FROM soft_loans
		 WHERE employee_row_id = $1
		   AND status = 'ACTIVE'
		   AND ($3 * 12 + $2 - 1) >= (start_year * 12 + start_month - 1)
		   AND ($3 * 12 + $2 - 1) < (start_year * 12 + start_month - 1 + duration_months)
		 ORDER BY created_at`,
		employeeRowID, month, year)
}

func (r *softLoanRepository) list(ctx context.Context, query string, args ...interface{}) ([]softloan.SoftLoan, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list soft loans: %w", err)
	}
	defer rows.Close()

	var loans []softloan.SoftLoan
	for rows.Next() {
		l, err := scanSoftLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan soft loan: %w", err)
		}
		loans = append(loans, l)
	}

	return loans, rows.Err()
}

// Update implements softloan.SoftLoanRepository.
func (r *softLoanRepository) Update(ctx context.Context, loan softloan.SoftLoan) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE soft_loans
		SET monthly_amount = $2, remaining_amount = $3, status = $4,
			completed_at = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		loan.ID, loan.MonthlyAmount, loan.RemainingAmount, loan.Status, loan.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to update soft loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return softloan.ErrLoanNotFound
	}

	return nil
}

// ApplyInstallment implements softloan.SoftLoanRepository.
func (r *softLoanRepository) ApplyInstallment(ctx context.Context, id string, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE soft_loans
		SET remaining_amount = remaining_amount - $2,
			status = CASE WHEN remaining_amount - $2 <= 0 THEN 'COMPLETED' ELSE status END,
			completed_at = CASE WHEN remaining_amount - $2 <= 0 THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE' AND remaining_amount >= $2
	`

	tag, err := q.Exec(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("failed to apply loan installment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return softloan.ErrNotActive
	}

	return nil
}

// RestoreInstallment implements softloan.SoftLoanRepository.
func (r *softLoanRepository) RestoreInstallment(ctx context.Context, id string, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE soft_loans
		SET remaining_amount = remaining_amount + $2,
			status = CASE WHEN status = 'COMPLETED' THEN 'ACTIVE' ELSE status END,
			completed_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("failed to restore loan installment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return softloan.ErrLoanNotFound
	}

	return nil
}
