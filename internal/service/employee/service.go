package employee

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/palmhr/attendance-backend-go/internal/domain/employee"
	"github.com/palmhr/attendance-backend-go/internal/domain/payroll"
	"github.com/palmhr/attendance-backend-go/internal/domain/sequence"
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

// WageThresholds is the externally configured minimum-wage record. The
// service treats the values as opaque floors; it never computes them.
type WageThresholds struct {
	MinMonthlyWage decimal.Decimal
	MinHourlyWage  decimal.Decimal
}

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	idLogRepo    employee.EmployeeIDLogRepository
	sequenceRepo sequence.SequenceRepository
	payrollRepo  payroll.PayrollRepository
	userRepo     user.UserRepository
	wages        WageThresholds
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	idLogRepo employee.EmployeeIDLogRepository,
	sequenceRepo sequence.SequenceRepository,
	payrollRepo payroll.PayrollRepository,
	userRepo user.UserRepository,
	wages WageThresholds,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		idLogRepo:    idLogRepo,
		sequenceRepo: sequenceRepo,
		payrollRepo:  payrollRepo,
		userRepo:     userRepo,
		wages:        wages,
	}
}

// Register validates the request, then mints the employee identifier and
// creates the row inside one transaction so the sequence increment and the
// insert commit or abort together.
func (s *EmployeeServiceImpl) Register(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkWageFloor(employee.CompensationMode(req.CompensationMode), req.MonthlySalary, req.HourlyRate); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		OrganizationCode: req.OrganizationCode,
		Name:             req.Name,
		CompensationMode: employee.CompensationMode(req.CompensationMode),
		IsActive:         true,
	}
	if req.MonthlySalary != nil {
		emp.MonthlySalary = *req.MonthlySalary
	}
	if req.HourlyRate != nil {
		emp.HourlyRate = *req.HourlyRate
	}
	if req.BPJSHealthRate != nil {
		emp.BPJSHealthRate = *req.BPJSHealthRate
	}
	if req.BPJSEmploymentRate != nil {
		emp.BPJSEmploymentRate = *req.BPJSEmploymentRate
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		seq, err := s.sequenceRepo.Next(txCtx, req.OrganizationCode)
		if err != nil {
			return err
		}
		emp.EmployeeID = sequence.FormatEmployeeID(req.OrganizationCode, seq)

		created, err := s.employeeRepo.Create(txCtx, emp)
		if err != nil {
			return err
		}
		emp = created
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// Update applies a profile edit. Wage changes are re-validated against the
// configured thresholds.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.MonthlySalary != nil {
		emp.MonthlySalary = *req.MonthlySalary
	}
	if req.HourlyRate != nil {
		emp.HourlyRate = *req.HourlyRate
	}
	if req.BPJSHealthRate != nil {
		emp.BPJSHealthRate = *req.BPJSHealthRate
	}
	if req.BPJSEmploymentRate != nil {
		emp.BPJSEmploymentRate = *req.BPJSEmploymentRate
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := s.checkWageFloor(emp.CompensationMode, &emp.MonthlySalary, &emp.HourlyRate); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// Transfer moves an employee to another organization. A fresh identifier is
// minted from the target organization's sequence and the old->new mapping is
// appended to the immutable identifier log, all in one transaction.
func (s *EmployeeServiceImpl) Transfer(ctx context.Context, req employee.TransferEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var emp employee.Employee
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if current.OrganizationCode == req.NewOrganizationCode {
			return employee.ErrSameOrganization
		}

		seq, err := s.sequenceRepo.Next(txCtx, req.NewOrganizationCode)
		if err != nil {
			return err
		}
		newID := sequence.FormatEmployeeID(req.NewOrganizationCode, seq)

		if err := s.employeeRepo.UpdateEmployeeID(txCtx, current.ID, newID); err != nil {
			return err
		}

		if err := s.idLogRepo.Create(txCtx, employee.EmployeeIDLog{
			EmployeeRowID: current.ID,
			OldEmployeeID: current.EmployeeID,
			NewEmployeeID: newID,
			Reason:        req.Reason,
		}); err != nil {
			return err
		}

		current.EmployeeID = newID
		current.OrganizationCode = req.NewOrganizationCode
		emp = current
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// Delete removes the employee and all dependent rows in one transaction.
// Employees with payroll history are never hard-deleted.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		hasPayroll, err := s.payrollRepo.ExistsForEmployee(txCtx, id)
		if err != nil {
			return err
		}
		if hasPayroll {
			return employee.ErrHasPayrollHistory
		}

		if err := s.userRepo.DeleteByEmployeeRowID(txCtx, id); err != nil {
			return err
		}

		// Attendance, approval logs, ledgers, advances and loans cascade
		// from the employee row.
		return s.employeeRepo.Delete(txCtx, id)
	})
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, organizationCode string, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, organizationCode, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) IdentifierHistory(ctx context.Context, id string) ([]employee.EmployeeIDLog, error) {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.idLogRepo.ListByEmployee(ctx, id)
}

func (s *EmployeeServiceImpl) checkWageFloor(mode employee.CompensationMode, monthly, hourly *decimal.Decimal) error {
	switch mode {
	case employee.ModeShift:
		if monthly != nil && monthly.LessThan(s.wages.MinMonthlyWage) {
			return employee.ErrWageBelowMinimum
		}
	case employee.ModeNonShift:
		if hourly != nil && hourly.LessThan(s.wages.MinHourlyWage) {
			return employee.ErrWageBelowMinimum
		}
	}
	return nil
}
