package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/palmhr/attendance-backend-go/internal/domain/advance"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

const advanceColumns = `
	id, employee_row_id, amount, request_month, request_year,
	status, deduction_month, deduction_year, deducted_at, created_at, updated_at`

func scanAdvance(row pgx.Row) (advance.Advance, error) {
	var a advance.Advance
	err := row.Scan(
		&a.ID, &a.EmployeeRowID, &a.Amount, &a.RequestMonth, &a.RequestYear,
		&a.Status, &a.DeductionMonth, &a.DeductionYear, &a.DeductedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements advance.AdvanceRepository.
func (r *advanceRepository) Create(ctx context.Context, adv advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO advances (employee_row_id, amount, request_month, request_year, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		adv.EmployeeRowID, adv.Amount, adv.RequestMonth, adv.RequestYear, adv.Status,
	).Scan(&adv.ID, &adv.CreatedAt, &adv.UpdatedAt)
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return adv, nil
}

// GetByID implements advance.AdvanceRepository.
func (r *advanceRepository) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + advanceColumns + ` FROM advances WHERE id = $1`

	a, err := scanAdvance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance: %w", err)
	}

	return a, nil
}

// ListByEmployee implements advance.AdvanceRepository.
func (r *advanceRepository) ListByEmployee(ctx context.Context, employeeRowID string) ([]advance.Advance, error) {
	return r.list(ctx,
		`SELECT`+advanceColumns+` FROM advances WHERE employee_row_id = $1 ORDER BY created_at DESC`,
		employeeRowID)
}

// ListDeductibleFor implements advance.AdvanceRepository.
func (r *advanceRepository) ListDeductibleFor(ctx context.Context, employeeRowID string, month, year int) ([]advance.Advance, error) {
	return r.list(ctx,
		`SELECT`+advanceColumns+`
		 FROM advances
		 WHERE employee_row_id = $1
		   AND status = 'APPROVED'
		   AND deducted_at IS NULL
		   AND deduction_month = $2
		   AND deduction_year = $3
		 ORDER BY created_at`,
		employeeRowID, month, year)
}

// ListDeductedByPeriod implements advance.AdvanceRepository.
func (r *advanceRepository) ListDeductedByPeriod(ctx context.Context, employeeRowID string, month, year int) ([]advance.Advance, error) {
	return r.list(ctx,
		`SELECT`+advanceColumns+`
		 FROM advances
		 WHERE employee_row_id = $1
		   AND deducted_at IS NOT NULL
		   AND deduction_month = $2
		   AND deduction_year = $3
		 ORDER BY created_at`,
		employeeRowID, month, year)
}

func (r *advanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}

	return advances, rows.Err()
}

// Update implements advance.AdvanceRepository.
func (r *advanceRepository) Update(ctx context.Context, adv advance.Advance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE advances
		SET status = $2, deduction_month = $3, deduction_year = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, adv.ID, adv.Status, adv.DeductionMonth, adv.DeductionYear)
	if err != nil {
		return fmt.Errorf("failed to update advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}

	return nil
}

// MarkDeducted implements advance.AdvanceRepository.
func (r *advanceRepository) MarkDeducted(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE advances SET deducted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deducted_at IS NULL`,
		id)
	if err != nil {
		return fmt.Errorf("failed to mark advance deducted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAlreadyDeducted
	}

	return nil
}

// ClearDeducted implements advance.AdvanceRepository.
func (r *advanceRepository) ClearDeducted(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE advances SET deducted_at = NULL, updated_at = NOW() WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("failed to clear advance deduction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}

	return nil
}
