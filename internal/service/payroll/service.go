package payroll

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/palmhr/attendance-backend-go/internal/domain/advance"
	"github.com/palmhr/attendance-backend-go/internal/domain/attendance"
	"github.com/palmhr/attendance-backend-go/internal/domain/employee"
	"github.com/palmhr/attendance-backend-go/internal/domain/notification"
	"github.com/palmhr/attendance-backend-go/internal/domain/payroll"
	"github.com/palmhr/attendance-backend-go/internal/domain/softloan"
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	tx             database.Transactor
	payrollRepo    payroll.PayrollRepository
	allowanceRepo  payroll.AllowanceRepository
	deductionRepo  payroll.DeductionRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	advanceRepo    advance.AdvanceRepository
	loanRepo       softloan.SoftLoanRepository
	userRepo       user.UserRepository
	notifier       notification.Service
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	allowanceRepo payroll.AllowanceRepository,
	deductionRepo payroll.DeductionRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	advanceRepo advance.AdvanceRepository,
	loanRepo softloan.SoftLoanRepository,
	userRepo user.UserRepository,
	notifier notification.Service,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		allowanceRepo:  allowanceRepo,
		deductionRepo:  deductionRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		advanceRepo:    advanceRepo,
		loanRepo:       loanRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// attendanceTotals is the per-period attendance summary the computation
// consumes.
type attendanceTotals struct {
	daysPresent     int
	daysAbsent      int
	lateMinutes     int
	overtimeMinutes int
}

func summarize(records []attendance.Record) attendanceTotals {
	var t attendanceTotals
	for _, rec := range records {
		if rec.CheckIn != nil {
			t.daysPresent++
		}
		if rec.Status == attendance.StatusAbsent {
			t.daysAbsent++
		}
		// An approved late reason converts the day to PRESENT, so only
		// unexcused lateness accumulates here.
		if rec.Status == attendance.StatusLate {
			t.lateMinutes += rec.LateMinutes
		}
		if rec.IsOvertimeApproved {
			t.overtimeMinutes += rec.OvertimeMinutes
		}
	}
	return t
}

// hourlyEquivalent returns the rate used for overtime and late valuation. For
// monthly-salaried employees it is derived from the standard 22-day,
// 8-hour-day month.
func hourlyEquivalent(emp employee.Employee) decimal.Decimal {
	if emp.CompensationMode == employee.ModeNonShift {
		return emp.HourlyRate
	}
	divisor := decimal.NewFromInt(int64(payroll.StandardWorkDaysPerMonth * payroll.StandardWorkHoursPerDay))
	return emp.MonthlySalary.Div(divisor)
}

// Generate computes and persists one payroll record for (employee, month,
// year). The computation, the generated deduction rows, and the consumption of
// advances and loan installments commit atomically; a second call for the same
// key is rejected as a conflict.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	var rec payroll.Record
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, req.EmployeeRowID)
		if err != nil {
			return err
		}

		existing, err := s.payrollRepo.GetByPeriod(txCtx, req.EmployeeRowID, req.Month, req.Year)
		if err != nil {
			return err
		}
		if existing != nil {
			return payroll.ErrPeriodAlreadyExists
		}

		records, err := s.attendanceRepo.ListMonth(txCtx, req.EmployeeRowID, req.Month, req.Year)
		if err != nil {
			return err
		}
		totals := summarize(records)

		hourly := hourlyEquivalent(emp)

		var base decimal.Decimal
		switch emp.CompensationMode {
		case employee.ModeNonShift:
			base = decimal.NewFromInt(int64(totals.daysPresent)).
				Mul(emp.HourlyRate).
				Mul(decimal.NewFromInt(payroll.StandardWorkHoursPerDay))
		default:
			base = emp.MonthlySalary
		}

		overtimeHours := decimal.NewFromInt(int64(totals.overtimeMinutes)).Div(decimal.NewFromInt(60))
		overtimeAmount := overtimeHours.Mul(hourly).Mul(payroll.OvertimeMultiplier)

		var absenceDeduction decimal.Decimal
		if emp.CompensationMode == employee.ModeShift && totals.daysAbsent > 0 {
			dailyRate := emp.MonthlySalary.Div(decimal.NewFromInt(payroll.StandardWorkDaysPerMonth))
			absenceDeduction = decimal.NewFromInt(int64(totals.daysAbsent)).Mul(dailyRate)
		}

		lateDeduction := decimal.NewFromInt(int64(totals.lateMinutes)).Div(decimal.NewFromInt(60)).Mul(hourly)
		bpjsHealth := emp.BPJSHealthRate.Mul(base)
		bpjsEmployment := emp.BPJSEmploymentRate.Mul(base)

		advances, err := s.advanceRepo.ListDeductibleFor(txCtx, req.EmployeeRowID, req.Month, req.Year)
		if err != nil {
			return err
		}
		advanceTotal := decimal.Zero
		for _, adv := range advances {
			advanceTotal = advanceTotal.Add(adv.Amount)
		}

		loans, err := s.loanRepo.ListActiveFor(txCtx, req.EmployeeRowID, req.Month, req.Year)
		if err != nil {
			return err
		}
		type installment struct {
			loanID string
			amount decimal.Decimal
		}
		var installments []installment
		loanTotal := decimal.Zero
		for _, loan := range loans {
			amount := loan.InstallmentFor(req.Month, req.Year)
			if amount.IsZero() {
				continue
			}
			installments = append(installments, installment{loanID: loan.ID, amount: amount})
			loanTotal = loanTotal.Add(amount)
		}

		// Ad-hoc rows only; engine-generated rows carry a payroll_id and are
		// excluded from the sum.
		otherDeductions, err := s.deductionRepo.SumByPeriod(txCtx, req.EmployeeRowID, req.Month, req.Year)
		if err != nil {
			return err
		}
		allowanceTotal, err := s.allowanceRepo.SumByPeriod(txCtx, req.EmployeeRowID, req.Month, req.Year)
		if err != nil {
			return err
		}

		totalDeductions := absenceDeduction.
			Add(lateDeduction).
			Add(bpjsHealth).
			Add(bpjsEmployment).
			Add(advanceTotal).
			Add(loanTotal).
			Add(otherDeductions)

		// Net may go negative; payout handling of a negative balance is a
		// back-office decision, not a computation one.
		net := base.Add(allowanceTotal).Add(overtimeAmount).Sub(totalDeductions)

		created, err := s.payrollRepo.Create(txCtx, payroll.Record{
			EmployeeRowID:   req.EmployeeRowID,
			Month:           req.Month,
			Year:            req.Year,
			BaseSalary:      base,
			TotalAllowances: allowanceTotal,
			TotalDeductions: totalDeductions,
			OvertimeHours:   overtimeHours,
			OvertimeAmount:  overtimeAmount,
			DaysPresent:     totals.daysPresent,
			DaysAbsent:      totals.daysAbsent,
			BPJSHealth:      bpjsHealth,
			BPJSEmployment:  bpjsEmployment,
			LateDeduction:   lateDeduction,
			NetSalary:       net,
			Status:          payroll.PayrollStatusPending,
		})
		if err != nil {
			return err
		}
		rec = created

		generated := []struct {
			dtype  payroll.DeductionType
			amount decimal.Decimal
		}{
			{payroll.DeductionAbsence, absenceDeduction},
			{payroll.DeductionLate, lateDeduction},
			{payroll.DeductionBPJSHealth, bpjsHealth},
			{payroll.DeductionBPJSEmployment, bpjsEmployment},
			{payroll.DeductionAdvance, advanceTotal},
		}
		for _, g := range generated {
			if g.amount.IsZero() {
				continue
			}
			if _, err := s.deductionRepo.Create(txCtx, payroll.Deduction{
				EmployeeRowID: req.EmployeeRowID,
				Month:         req.Month,
				Year:          req.Year,
				Type:          g.dtype,
				Amount:        g.amount,
				PayrollID:     &created.ID,
			}); err != nil {
				return err
			}
		}

		// One SOFT_LOAN row per consumed loan. The row records exactly what
		// that loan paid this period, which is what a later revert restores.
		for _, inst := range installments {
			loanID := inst.loanID
			if _, err := s.deductionRepo.Create(txCtx, payroll.Deduction{
				EmployeeRowID: req.EmployeeRowID,
				Month:         req.Month,
				Year:          req.Year,
				Type:          payroll.DeductionSoftLoan,
				Amount:        inst.amount,
				PayrollID:     &created.ID,
				LoanID:        &loanID,
			}); err != nil {
				return err
			}
		}

		for _, adv := range advances {
			if err := s.advanceRepo.MarkDeducted(txCtx, adv.ID); err != nil {
				return err
			}
		}
		for _, inst := range installments {
			if err := s.loanRepo.ApplyInstallment(txCtx, inst.loanID, inst.amount); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	if account, err := s.userRepo.GetByEmployeeRowID(ctx, rec.EmployeeRowID); err == nil {
		s.notifier.Notify(ctx, account.ID, notification.TypePayrollGenerated,
			"Payroll generated",
			fmt.Sprintf("Your payroll for %02d/%d has been generated.", rec.Month, rec.Year))
	}

	return payroll.ToResponse(rec), nil
}

// MarkPaid finalizes a PENDING record.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.RecordResponse, error) {
	var rec payroll.Record
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.payrollRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if current.Status != payroll.PayrollStatusPending {
			return payroll.ErrNotPending
		}
		if err := s.payrollRepo.UpdateStatus(txCtx, id, payroll.PayrollStatusPaid); err != nil {
			return err
		}
		current.Status = payroll.PayrollStatusPaid
		rec = current
		return nil
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return payroll.ToResponse(rec), nil
}

// Delete reverts an unpaid record: consumed advances become deductible again,
// loan installments are restored, generated deduction rows are removed, and
// the record itself is deleted, all in one transaction. PAID records are
// final.
func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.payrollRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if rec.Status == payroll.PayrollStatusPaid {
			return payroll.ErrCannotDeletePaid
		}

		deducted, err := s.advanceRepo.ListDeductedByPeriod(txCtx, rec.EmployeeRowID, rec.Month, rec.Year)
		if err != nil {
			return err
		}
		for _, adv := range deducted {
			if err := s.advanceRepo.ClearDeducted(txCtx, adv.ID); err != nil {
				return err
			}
		}

		generated, err := s.deductionRepo.ListByPeriod(txCtx, rec.EmployeeRowID, rec.Month, rec.Year)
		if err != nil {
			return err
		}
		// Each SOFT_LOAN row names the loan it was taken from; hand that loan
		// back exactly the recorded amount.
		for _, d := range generated {
			if d.PayrollID == nil || *d.PayrollID != rec.ID {
				continue
			}
			if d.Type == payroll.DeductionSoftLoan && d.LoanID != nil {
				if err := s.loanRepo.RestoreInstallment(txCtx, *d.LoanID, d.Amount); err != nil {
					return err
				}
			}
		}

		if err := s.deductionRepo.DeleteByPayrollID(txCtx, rec.ID); err != nil {
			return err
		}

		return s.payrollRepo.Delete(txCtx, rec.ID)
	})
}

func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.RecordResponse, error) {
	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return payroll.ToResponse(rec), nil
}

func (s *PayrollServiceImpl) ListPeriod(ctx context.Context, month, year int) ([]payroll.RecordResponse, error) {
	records, err := s.payrollRepo.ListPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, payroll.ToResponse(rec))
	}
	return responses, nil
}

// CreateAllowance adds an ad-hoc allowance row. Refused once the period's
// payroll record exists.
func (s *PayrollServiceImpl) CreateAllowance(ctx context.Context, req payroll.CreateLedgerEntryRequest) (payroll.Allowance, error) {
	if err := req.Validate(false); err != nil {
		return payroll.Allowance{}, err
	}

	var created payroll.Allowance
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requireOpenPeriod(txCtx, req.EmployeeRowID, req.Month, req.Year); err != nil {
			return err
		}
		a, err := s.allowanceRepo.Create(txCtx, payroll.Allowance{
			EmployeeRowID: req.EmployeeRowID,
			Month:         req.Month,
			Year:          req.Year,
			Type:          req.Type,
			Amount:        req.Amount,
		})
		if err != nil {
			return err
		}
		created = a
		return nil
	})
	return created, err
}

// CreateDeduction adds an ad-hoc deduction row under the same period rule.
func (s *PayrollServiceImpl) CreateDeduction(ctx context.Context, req payroll.CreateLedgerEntryRequest) (payroll.Deduction, error) {
	if err := req.Validate(true); err != nil {
		return payroll.Deduction{}, err
	}

	var created payroll.Deduction
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requireOpenPeriod(txCtx, req.EmployeeRowID, req.Month, req.Year); err != nil {
			return err
		}
		d, err := s.deductionRepo.Create(txCtx, payroll.Deduction{
			EmployeeRowID: req.EmployeeRowID,
			Month:         req.Month,
			Year:          req.Year,
			Type:          payroll.DeductionType(req.Type),
			Amount:        req.Amount,
		})
		if err != nil {
			return err
		}
		created = d
		return nil
	})
	return created, err
}

func (s *PayrollServiceImpl) ListAllowances(ctx context.Context, employeeRowID string, month, year int) ([]payroll.Allowance, error) {
	return s.allowanceRepo.ListByPeriod(ctx, employeeRowID, month, year)
}

func (s *PayrollServiceImpl) ListDeductions(ctx context.Context, employeeRowID string, month, year int) ([]payroll.Deduction, error) {
	return s.deductionRepo.ListByPeriod(ctx, employeeRowID, month, year)
}

// requireOpenPeriod refuses ledger edits once the period's payroll record
// exists.
func (s *PayrollServiceImpl) requireOpenPeriod(ctx context.Context, employeeRowID string, month, year int) error {
	existing, err := s.payrollRepo.GetByPeriod(ctx, employeeRowID, month, year)
	if err != nil {
		return err
	}
	if existing != nil {
		return payroll.ErrPeriodFinalized
	}
	return nil
}
