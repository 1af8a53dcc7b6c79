package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/palmhr/attendance-backend-go/internal/domain/employee"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_id, organization_code, name, compensation_mode,
	monthly_salary, hourly_rate, bpjs_health_rate, bpjs_employment_rate,
	is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.OrganizationCode, &e.Name, &e.CompensationMode,
		&e.MonthlySalary, &e.HourlyRate, &e.BPJSHealthRate, &e.BPJSEmploymentRate,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			employee_id, organization_code, name, compensation_mode,
			monthly_salary, hourly_rate, bpjs_health_rate, bpjs_employment_rate, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.EmployeeID,
		emp.OrganizationCode,
		emp.Name,
		emp.CompensationMode,
		emp.MonthlySalary,
		emp.HourlyRate,
		emp.BPJSHealthRate,
		emp.BPJSEmploymentRate,
		emp.IsActive,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "uk_employees_employee_id") {
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by identifier: %w", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, organizationCode string, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + ` FROM employees WHERE 1=1`
	args := []interface{}{}

	if organizationCode != "" {
		args = append(args, organizationCode)
		query += fmt.Sprintf(" AND organization_code = $%d", len(args))
	}
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY employee_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $2, monthly_salary = $3, hourly_rate = $4,
			bpjs_health_rate = $5, bpjs_employment_rate = $6,
			is_active = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		emp.ID, emp.Name, emp.MonthlySalary, emp.HourlyRate,
		emp.BPJSHealthRate, emp.BPJSEmploymentRate, emp.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateEmployeeID(ctx context.Context, id string, newEmployeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET employee_id = $2,
			organization_code = split_part($2, '-', 1),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, newEmployeeID)
	if err != nil {
		return fmt.Errorf("failed to swap employee identifier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository. Dependent rows are declared
// ON DELETE CASCADE, so the row delete removes attendance, ledgers, loans and
// payroll inside the caller's transaction.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

type employeeIDLogRepository struct {
	db *database.DB
}

func NewEmployeeIDLogRepository(db *database.DB) employee.EmployeeIDLogRepository {
	return &employeeIDLogRepository{db: db}
}

// Create implements employee.EmployeeIDLogRepository.
func (r *employeeIDLogRepository) Create(ctx context.Context, log employee.EmployeeIDLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_id_logs (employee_row_id, old_employee_id, new_employee_id, reason)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, log.EmployeeRowID, log.OldEmployeeID, log.NewEmployeeID, log.Reason); err != nil {
		return fmt.Errorf("failed to append employee id log: %w", err)
	}

	return nil
}

// ListByEmployee implements employee.EmployeeIDLogRepository.
func (r *employeeIDLogRepository) ListByEmployee(ctx context.Context, employeeRowID string) ([]employee.EmployeeIDLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_row_id, old_employee_id, new_employee_id, reason, created_at
		FROM employee_id_logs
		WHERE employee_row_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, employeeRowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee id logs: %w", err)
	}
	defer rows.Close()

	var logs []employee.EmployeeIDLog
	for rows.Next() {
		var l employee.EmployeeIDLog
		if err := rows.Scan(&l.ID, &l.EmployeeRowID, &l.OldEmployeeID, &l.NewEmployeeID, &l.Reason, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee id log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
