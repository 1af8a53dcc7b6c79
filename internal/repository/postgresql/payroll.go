package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/palmhr/attendance-backend-go/internal/domain/payroll"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	id, employee_row_id, month, year, base_salary, total_allowances, total_deductions,
	overtime_hours, overtime_amount, days_present, days_absent,
	bpjs_health, bpjs_employment, late_deduction, net_salary,
	status, paid_at, created_at, updated_at`

func scanPayroll(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeRowID, &rec.Month, &rec.Year, &rec.BaseSalary, &rec.TotalAllowances, &rec.TotalDeductions,
		&rec.OvertimeHours, &rec.OvertimeAmount, &rec.DaysPresent, &rec.DaysAbsent,
		&rec.BPJSHealth, &rec.BPJSEmployment, &rec.LateDeduction, &rec.NetSalary,
		&rec.Status, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements payroll.PayrollRepository. The unique key on
// (employee_row_id, month, year) makes regeneration fail instead of
// overwriting.
func (r *payrollRepository) Create(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_row_id, month, year, base_salary, total_allowances, total_deductions,
			overtime_hours, overtime_amount, days_present, days_absent,
			bpjs_health, bpjs_employment, late_deduction, net_salary, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeRowID, rec.Month, rec.Year, rec.BaseSalary, rec.TotalAllowances, rec.TotalDeductions,
		rec.OvertimeHours, rec.OvertimeAmount, rec.DaysPresent, rec.DaysAbsent,
		rec.BPJSHealth, rec.BPJSEmployment, rec.LateDeduction, rec.NetSalary, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_records_period") {
			return payroll.Record{}, payroll.ErrPeriodAlreadyExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollColumns + ` FROM payroll_records WHERE id = $1`

	rec, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

// GetByPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByPeriod(ctx context.Context, employeeRowID string, month, year int) (*payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollColumns + `
		FROM payroll_records
		WHERE employee_row_id = $1 AND month = $2 AND year = $3
		LIMIT 1`

	rec, err := scanPayroll(q.QueryRow(ctx, query, employeeRowID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll record by period: %w", err)
	}

	return &rec, nil
}

// ListPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) ListPeriod(ctx context.Context, month, year int) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollColumns + `
		FROM payroll_records
		WHERE month = $1 AND year = $2
		ORDER BY employee_row_id`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpdateStatus implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $2,
			paid_at = CASE WHEN $2 = 'PAID' THEN NOW() ELSE paid_at END,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

// Delete implements payroll.PayrollRepository.
func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

// ExistsForEmployee implements payroll.PayrollRepository.
func (r *payrollRepository) ExistsForEmployee(ctx context.Context, employeeRowID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payroll_records WHERE employee_row_id = $1)`,
		employeeRowID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payroll history: %w", err)
	}

	return exists, nil
}

type allowanceRepository struct {
	db *database.DB
}

func NewAllowanceRepository(db *database.DB) payroll.AllowanceRepository {
	return &allowanceRepository{db: db}
}

// Create implements payroll.AllowanceRepository.
func (r *allowanceRepository) Create(ctx context.Context, a payroll.Allowance) (payroll.Allowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO allowances (employee_row_id, month, year, type, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, a.EmployeeRowID, a.Month, a.Year, a.Type, a.Amount).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return payroll.Allowance{}, fmt.Errorf("failed to create allowance: %w", err)
	}

	return a, nil
}

// ListByPeriod implements payroll.AllowanceRepository.
func (r *allowanceRepository) ListByPeriod(ctx context.Context, employeeRowID string, month, year int) ([]payroll.Allowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_row_id, month, year, type, amount, created_at
		FROM allowances
		WHERE employee_row_id = $1 AND month = $2 AND year = $3
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, employeeRowID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowances: %w", err)
	}
	defer rows.Close()

	var allowances []payroll.Allowance
	for rows.Next() {
		var a payroll.Allowance
		if err := rows.Scan(&a.ID, &a.EmployeeRowID, &a.Month, &a.Year, &a.Type, &a.Amount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allowance: %w", err)
		}
		allowances = append(allowances, a)
	}

	return allowances, rows.Err()
}

// SumByPeriod implements payroll.AllowanceRepository.
func (r *allowanceRepository) SumByPeriod(ctx context.Context, employeeRowID string, month, year int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM allowances WHERE employee_row_id = $1 AND month = $2 AND year = $3`,
		employeeRowID, month, year,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum allowances: %w", err)
	}

	return sum, nil
}

// Delete implements payroll.AllowanceRepository.
func (r *allowanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM allowances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete allowance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAllowanceNotFound
	}

	return nil
}

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) payroll.DeductionRepository {
	return &deductionRepository{db: db}
}

// Create implements payroll.DeductionRepository.
func (r *deductionRepository) Create(ctx context.Context, d payroll.Deduction) (payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deductions (employee_row_id, month, year, type, amount, payroll_id, loan_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, d.EmployeeRowID, d.Month, d.Year, d.Type, d.Amount, d.PayrollID, d.LoanID).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return payroll.Deduction{}, fmt.Errorf("failed to create deduction: %w", err)
	}

	return d, nil
}

// ListByPeriod implements payroll.DeductionRepository.
func (r *deductionRepository) ListByPeriod(ctx context.Context, employeeRowID string, month, year int) ([]payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_row_id, month, year, type, amount, payroll_id, loan_id, created_at
		FROM deductions
		WHERE employee_row_id = $1 AND month = $2 AND year = $3
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, employeeRowID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	var deductions []payroll.Deduction
	for rows.Next() {
		var d payroll.Deduction
		if err := rows.Scan(&d.ID, &d.EmployeeRowID, &d.Month, &d.Year, &d.Type, &d.Amount, &d.PayrollID, &d.LoanID, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}

	return deductions, rows.Err()
}

// SumByPeriod implements payroll.DeductionRepository. Engine-generated rows
// are excluded so a fresh generation never double counts a reverted run.
func (r *deductionRepository) SumByPeriod(ctx context.Context, employeeRowID string, month, year int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM deductions
		 WHERE employee_row_id = $1 AND month = $2 AND year = $3 AND payroll_id IS NULL`,
		employeeRowID, month, year,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum deductions: %w", err)
	}

	return sum, nil
}

// Delete implements payroll.DeductionRepository.
func (r *deductionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM deductions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deduction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDeductionNotFound
	}

	return nil
}

// DeleteByPayrollID implements payroll.DeductionRepository.
func (r *deductionRepository) DeleteByPayrollID(ctx context.Context, payrollID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM deductions WHERE payroll_id = $1`, payrollID); err != nil {
		return fmt.Errorf("failed to delete generated deductions: %w", err)
	}

	return nil
}
