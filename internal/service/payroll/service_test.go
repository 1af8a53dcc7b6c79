package payroll

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmhr/attendance-backend-go/internal/domain/advance"
	"github.com/palmhr/attendance-backend-go/internal/domain/attendance"
	"github.com/palmhr/attendance-backend-go/internal/domain/employee"
	"github.com/palmhr/attendance-backend-go/internal/domain/notification"
	"github.com/palmhr/attendance-backend-go/internal/domain/payroll"
	"github.com/palmhr/attendance-backend-go/internal/domain/softloan"
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memPayrollRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]payroll.Record
}

func (m *memPayrollRepo) Create(_ context.Context, rec payroll.Record) (payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.EmployeeRowID == rec.EmployeeRowID && r.Month == rec.Month && r.Year == rec.Year {
			return payroll.Record{}, payroll.ErrPeriodAlreadyExists
		}
	}
	m.seq++
	rec.ID = fmt.Sprintf("pay-%d", m.seq)
	m.records[rec.ID] = rec
	return rec, nil
}

func (m *memPayrollRepo) GetByID(_ context.Context, id string) (payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return rec, nil
}

func (m *memPayrollRepo) GetByPeriod(_ context.Context, employeeRowID string, month, year int) (*payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.EmployeeRowID == employeeRowID && r.Month == month && r.Year == year {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *memPayrollRepo) ListPeriod(_ context.Context, month, year int) ([]payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payroll.Record
	for _, r := range m.records {
		if r.Month == month && r.Year == year {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memPayrollRepo) UpdateStatus(_ context.Context, id string, status payroll.PayrollStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return payroll.ErrRecordNotFound
	}
	rec.Status = status
	if status == payroll.PayrollStatusPaid {
		now := time.Now()
		rec.PaidAt = &now
	}
	m.records[id] = rec
	return nil
}

func (m *memPayrollRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memPayrollRepo) ExistsForEmployee(_ context.Context, employeeRowID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.EmployeeRowID == employeeRowID {
			return true, nil
		}
	}
	return false, nil
}

type memAllowanceRepo struct {
	mu         sync.Mutex
	seq        int
	allowances []payroll.Allowance
}

func (m *memAllowanceRepo) Create(_ context.Context, a payroll.Allowance) (payroll.Allowance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	a.ID = fmt.Sprintf("alw-%d", m.seq)
	m.allowances = append(m.allowances, a)
	return a, nil
}

func (m *memAllowanceRepo) ListByPeriod(_ context.Context, employeeRowID string, month, year int) ([]payroll.Allowance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payroll.Allowance
	for _, a := range m.allowances {
		if a.EmployeeRowID == employeeRowID && a.Month == month && a.Year == year {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAllowanceRepo) SumByPeriod(_ context.Context, employeeRowID string, month, year int) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := decimal.Zero
	for _, a := range m.allowances {
		if a.EmployeeRowID == employeeRowID && a.Month == month && a.Year == year {
			sum = sum.Add(a.Amount)
		}
	}
	return sum, nil
}

func (m *memAllowanceRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.allowances {
		if a.ID == id {
			m.allowances = append(m.allowances[:i], m.allowances[i+1:]...)
			return nil
		}
	}
	return payroll.ErrAllowanceNotFound
}

type memDeductionRepo struct {
	mu         sync.Mutex
	seq        int
	deductions []payroll.Deduction
}

func (m *memDeductionRepo) Create(_ context.Context, d payroll.Deduction) (payroll.Deduction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	d.ID = fmt.Sprintf("ded-%d", m.seq)
	m.deductions = append(m.deductions, d)
	return d, nil
}

func (m *memDeductionRepo) ListByPeriod(_ context.Context, employeeRowID string, month, year int) ([]payroll.Deduction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payroll.Deduction
	for _, d := range m.deductions {
		if d.EmployeeRowID == employeeRowID && d.Month == month && d.Year == year {
			out = append(out, d)
		}
	}
	return out, nil
}

// SumByPeriod counts ad-hoc rows only, matching the store's payroll_id IS NULL
// filter.
func (m *memDeductionRepo) SumByPeriod(_ context.Context, employeeRowID string, month, year int) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := decimal.Zero
	for _, d := range m.deductions {
		if d.EmployeeRowID == employeeRowID && d.Month == month && d.Year == year && d.PayrollID == nil {
			sum = sum.Add(d.Amount)
		}
	}
	return sum, nil
}

func (m *memDeductionRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.deductions {
		if d.ID == id {
			m.deductions = append(m.deductions[:i], m.deductions[i+1:]...)
			return nil
		}
	}
	return payroll.ErrDeductionNotFound
}

func (m *memDeductionRepo) DeleteByPayrollID(_ context.Context, payrollID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.deductions[:0]
	for _, d := range m.deductions {
		if d.PayrollID == nil || *d.PayrollID != payrollID {
			kept = append(kept, d)
		}
	}
	m.deductions = kept
	return nil
}

type fakeAttendanceRepo struct {
	listMonthFn func(ctx context.Context, employeeRowID string, month, year int) ([]attendance.Record, error)
}

func (f *fakeAttendanceRepo) Create(context.Context, attendance.Record) (attendance.Record, error) {
	panic("not implemented")
}

func (f *fakeAttendanceRepo) GetByID(context.Context, string) (attendance.Record, error) {
	panic("not implemented")
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(context.Context, string, time.Time) (*attendance.Record, error) {
	panic("not implemented")
}

func (f *fakeAttendanceRepo) ListMonth(ctx context.Context, employeeRowID string, month, year int) ([]attendance.Record, error) {
	if f.listMonthFn != nil {
		return f.listMonthFn(ctx, employeeRowID, month, year)
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(context.Context, attendance.Record) error {
	panic("not implemented")
}

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) Create(context.Context, employee.Employee) (employee.Employee, error) {
	panic("not implemented")
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if f.emp.ID != id {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeID(context.Context, string) (employee.Employee, error) {
	panic("not implemented")
}

func (f *fakeEmployeeRepo) List(context.Context, string, bool) ([]employee.Employee, error) {
	panic("not implemented")
}

func (f *fakeEmployeeRepo) Update(context.Context, employee.Employee) error {
	panic("not implemented")
}

func (f *fakeEmployeeRepo) UpdateEmployeeID(context.Context, string, string) error {
	panic("not implemented")
}

func (f *fakeEmployeeRepo) Delete(context.Context, string) error { panic("not implemented") }

type memAdvanceRepo struct {
	mu       sync.Mutex
	advances map[string]advance.Advance
}

func (m *memAdvanceRepo) Create(_ context.Context, adv advance.Advance) (advance.Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advances[adv.ID] = adv
	return adv, nil
}

func (m *memAdvanceRepo) GetByID(_ context.Context, id string) (advance.Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	adv, ok := m.advances[id]
	if !ok {
		return advance.Advance{}, advance.ErrAdvanceNotFound
	}
	return adv, nil
}

func (m *memAdvanceRepo) ListByEmployee(_ context.Context, employeeRowID string) ([]advance.Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []advance.Advance
	for _, adv := range m.advances {
		if adv.EmployeeRowID == employeeRowID {
			out = append(out, adv)
		}
	}
	return out, nil
}

func (m *memAdvanceRepo) ListDeductibleFor(_ context.Context, employeeRowID string, month, year int) ([]advance.Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []advance.Advance
	for _, adv := range m.advances {
		if adv.EmployeeRowID == employeeRowID && adv.IsDeductibleFor(month, year) {
			out = append(out, adv)
		}
	}
	return out, nil
}

func (m *memAdvanceRepo) Update(_ context.Context, adv advance.Advance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advances[adv.ID] = adv
	return nil
}

func (m *memAdvanceRepo) MarkDeducted(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	adv, ok := m.advances[id]
	if !ok {
		return advance.ErrAdvanceNotFound
	}
	if adv.DeductedAt != nil {
		return advance.ErrAlreadyDeducted
	}
	now := time.Now()
	adv.DeductedAt = &now
	m.advances[id] = adv
	return nil
}

func (m *memAdvanceRepo) ClearDeducted(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	adv, ok := m.advances[id]
	if !ok {
		return advance.ErrAdvanceNotFound
	}
	adv.DeductedAt = nil
	m.advances[id] = adv
	return nil
}

func (m *memAdvanceRepo) ListDeductedByPeriod(_ context.Context, employeeRowID string, month, year int) ([]advance.Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []advance.Advance
	for _, adv := range m.advances {
		if adv.EmployeeRowID == employeeRowID && adv.DeductedAt != nil &&
			adv.DeductionMonth != nil && *adv.DeductionMonth == month &&
			adv.DeductionYear != nil && *adv.DeductionYear == year {
			out = append(out, adv)
		}
	}
	return out, nil
}

type memLoanRepo struct {
	mu    sync.Mutex
	loans map[string]softloan.SoftLoan
}

func (m *memLoanRepo) Create(_ context.Context, loan softloan.SoftLoan) (softloan.SoftLoan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[loan.ID] = loan
	return loan, nil
}

func (m *memLoanRepo) GetByID(_ context.Context, id string) (softloan.SoftLoan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	loan, ok := m.loans[id]
	if !ok {
		return softloan.SoftLoan{}, softloan.ErrLoanNotFound
	}
	return loan, nil
}

func (m *memLoanRepo) ListByEmployee(_ context.Context, employeeRowID string) ([]softloan.SoftLoan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []softloan.SoftLoan
	for _, loan := range m.loans {
		if loan.EmployeeRowID == employeeRowID {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (m *memLoanRepo) ListActiveFor(_ context.Context, employeeRowID string, month, year int) ([]softloan.SoftLoan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []softloan.SoftLoan
	for _, loan := range m.loans {
		if loan.EmployeeRowID == employeeRowID && loan.Status == softloan.StatusActive && loan.CoversPeriod(month, year) {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (m *memLoanRepo) Update(_ context.Context, loan softloan.SoftLoan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[loan.ID] = loan
	return nil
}

func (m *memLoanRepo) ApplyInstallment(_ context.Context, id string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	loan, ok := m.loans[id]
	if !ok {
		return softloan.ErrLoanNotFound
	}
	if loan.Status != softloan.StatusActive || loan.RemainingAmount.LessThan(amount) {
		return softloan.ErrNotActive
	}
	loan.RemainingAmount = loan.RemainingAmount.Sub(amount)
	if loan.RemainingAmount.IsZero() {
		loan.Status = softloan.StatusCompleted
		now := time.Now()
		loan.CompletedAt = &now
	}
	m.loans[id] = loan
	return nil
}

func (m *memLoanRepo) RestoreInstallment(_ context.Context, id string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	loan, ok := m.loans[id]
	if !ok {
		return softloan.ErrLoanNotFound
	}
	loan.RemainingAmount = loan.RemainingAmount.Add(amount)
	loan.Status = softloan.StatusActive
	loan.CompletedAt = nil
	m.loans[id] = loan
	return nil
}

type noUserRepo struct{}

func (noUserRepo) Create(context.Context, user.User) (user.User, error) { panic("not implemented") }

func (noUserRepo) GetByID(context.Context, string) (user.User, error) { panic("not implemented") }

func (noUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	panic("not implemented")
}

func (noUserRepo) GetByEmployeeRowID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (noUserRepo) DeleteByEmployeeRowID(context.Context, string) error { panic("not implemented") }

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, notification.NotificationType, string, string) {}

func (noopNotifier) List(context.Context, string, bool) ([]*notification.Notification, error) {
	panic("not implemented")
}

func (noopNotifier) UnreadCount(context.Context, string) (int, error) { panic("not implemented") }

func (noopNotifier) MarkRead(context.Context, []string, string) error { panic("not implemented") }

type testEnv struct {
	svc        *PayrollServiceImpl
	payrolls   *memPayrollRepo
	allowances *memAllowanceRepo
	deductions *memDeductionRepo
	advances   *memAdvanceRepo
	loans      *memLoanRepo
}

func newTestEnv(emp employee.Employee, records []attendance.Record) *testEnv {
	env := &testEnv{
		payrolls:   &memPayrollRepo{records: map[string]payroll.Record{}},
		allowances: &memAllowanceRepo{},
		deductions: &memDeductionRepo{},
		advances:   &memAdvanceRepo{advances: map[string]advance.Advance{}},
		loans:      &memLoanRepo{loans: map[string]softloan.SoftLoan{}},
	}
	env.svc = NewPayrollService(
		passthroughTx{},
		env.payrolls,
		env.allowances,
		env.deductions,
		&fakeAttendanceRepo{listMonthFn: func(context.Context, string, int, int) ([]attendance.Record, error) {
			return records, nil
		}},
		&fakeEmployeeRepo{emp: emp},
		env.advances,
		env.loans,
		noUserRepo{},
		noopNotifier{},
	)
	return env
}

func shiftEmployee() employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		EmployeeID:       "CTU-001",
		OrganizationCode: "CTU",
		Name:             "Test Employee",
		CompensationMode: employee.ModeShift,
		MonthlySalary:    decimal.NewFromInt(5_000_000),
		IsActive:         true,
	}
}

// monthRecords builds daysPresent present days, daysAbsent absent days, and
// one final present day carrying the given approved overtime minutes.
func monthRecords(daysPresent, daysAbsent, approvedOvertimeMinutes int) []attendance.Record {
	var records []attendance.Record
	day := 1
	for i := 0; i < daysPresent; i++ {
		checkIn := time.Date(2025, 7, day, 7, 0, 0, 0, time.UTC)
		rec := attendance.Record{
			EmployeeRowID: "emp-1",
			Date:          time.Date(2025, 7, day, 0, 0, 0, 0, time.UTC),
			CheckIn:       &checkIn,
			Status:        attendance.StatusPresent,
		}
		if i == 0 && approvedOvertimeMinutes > 0 {
			rec.OvertimeMinutes = approvedOvertimeMinutes
			rec.IsOvertimeApproved = true
		}
		records = append(records, rec)
		day++
	}
	for i := 0; i < daysAbsent; i++ {
		records = append(records, attendance.Record{
			EmployeeRowID: "emp-1",
			Date:          time.Date(2025, 7, day, 0, 0, 0, 0, time.UTC),
			Status:        attendance.StatusAbsent,
		})
		day++
	}
	return records
}

func TestGenerateShiftScenario(t *testing.T) {
	// 5,000,000 base, 20 days present, 2 absent, 10 hours approved overtime.
	env := newTestEnv(shiftEmployee(), monthRecords(20, 2, 600))

	resp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, resp.DaysPresent)
	assert.Equal(t, 2, resp.DaysAbsent)
	assert.True(t, resp.BaseSalary.Equal(decimal.NewFromInt(5_000_000)))
	assert.True(t, resp.OvertimeHours.Equal(decimal.NewFromInt(10)))

	// Hourly equivalent 5,000,000/176 = 28,409.09; 10h at 1.5x.
	assert.True(t, resp.OvertimeAmount.Round(0).Equal(decimal.NewFromInt(426_136)),
		"overtime amount was %s", resp.OvertimeAmount)

	// 2 absent days at the 22-day daily rate.
	absence := decimal.NewFromInt(5_000_000).Div(decimal.NewFromInt(22)).Mul(decimal.NewFromInt(2))
	assert.True(t, resp.TotalDeductions.Sub(absence).Abs().LessThan(decimal.NewFromFloat(0.01)),
		"total deductions was %s", resp.TotalDeductions)

	expectedNet := resp.BaseSalary.Add(resp.OvertimeAmount).Sub(resp.TotalDeductions)
	assert.True(t, resp.NetSalary.Equal(expectedNet))
	assert.Equal(t, "PENDING", resp.Status)

	// The absence row is persisted for the breakdown.
	rows, err := env.deductions.ListByPeriod(context.Background(), "emp-1", 7, 2025)
	require.NoError(t, err)
	var types []payroll.DeductionType
	for _, d := range rows {
		require.NotNil(t, d.PayrollID)
		types = append(types, d.Type)
	}
	assert.Contains(t, types, payroll.DeductionAbsence)
}

func TestGenerateNonShift(t *testing.T) {
	emp := employee.Employee{
		ID:               "emp-1",
		CompensationMode: employee.ModeNonShift,
		HourlyRate:       decimal.NewFromInt(25_000),
		IsActive:         true,
	}
	env := newTestEnv(emp, monthRecords(15, 0, 0))

	resp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)

	// 15 days x 25,000/h x 8h.
	assert.True(t, resp.BaseSalary.Equal(decimal.NewFromInt(3_000_000)))
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(3_000_000)))
}

func TestGenerateTwiceConflicts(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(22, 0, 0))
	req := payroll.GeneratePayrollRequest{EmployeeRowID: "emp-1", Month: 7, Year: 2025}

	_, err := env.svc.Generate(context.Background(), req)
	require.NoError(t, err)

	_, err = env.svc.Generate(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrPeriodAlreadyExists)
}

func TestGenerateConsumesAdvanceForItsPeriodOnly(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(22, 0, 0))
	july, year := 7, 2025
	env.advances.advances["adv-1"] = advance.Advance{
		ID:             "adv-1",
		EmployeeRowID:  "emp-1",
		Amount:         decimal.NewFromInt(500_000),
		Status:         advance.StatusApproved,
		DeductionMonth: &july,
		DeductionYear:  &year,
	}

	// June run ignores the July-targeted advance.
	juneResp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 6, Year: 2025,
	})
	require.NoError(t, err)
	assert.True(t, juneResp.TotalDeductions.IsZero())

	julyResp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)
	assert.True(t, julyResp.TotalDeductions.Equal(decimal.NewFromInt(500_000)))

	adv, err := env.advances.GetByID(context.Background(), "adv-1")
	require.NoError(t, err)
	assert.NotNil(t, adv.DeductedAt)
}

func TestGenerateConsumesLoanInstallment(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(22, 0, 0))
	env.loans.loans["loan-1"] = softloan.SoftLoan{
		ID:              "loan-1",
		EmployeeRowID:   "emp-1",
		TotalAmount:     decimal.NewFromInt(1_000_000),
		MonthlyAmount:   decimal.NewFromInt(100_000),
		RemainingAmount: decimal.NewFromInt(1_000_000),
		DurationMonths:  10,
		Status:          softloan.StatusActive,
		StartMonth:      7,
		StartYear:       2025,
	}

	resp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalDeductions.Equal(decimal.NewFromInt(100_000)))

	loan, err := env.loans.GetByID(context.Background(), "loan-1")
	require.NoError(t, err)
	assert.True(t, loan.RemainingAmount.Equal(decimal.NewFromInt(900_000)))
	assert.Equal(t, softloan.StatusActive, loan.Status)
}

func TestLoanCompletesAtZeroWithoutGoingNegative(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(22, 0, 0))
	env.loans.loans["loan-1"] = softloan.SoftLoan{
		ID:              "loan-1",
		EmployeeRowID:   "emp-1",
		TotalAmount:     decimal.NewFromInt(1_000_000),
		MonthlyAmount:   decimal.NewFromInt(100_000),
		RemainingAmount: decimal.NewFromInt(100_000),
		DurationMonths:  10,
		Status:          softloan.StatusActive,
		StartMonth:      10,
		StartYear:       2024,
	}

	_, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)

	loan, err := env.loans.GetByID(context.Background(), "loan-1")
	require.NoError(t, err)
	assert.True(t, loan.RemainingAmount.IsZero())
	assert.Equal(t, softloan.StatusCompleted, loan.Status)
	assert.NotNil(t, loan.CompletedAt)
}

func TestDeleteRestoresAdvanceAndLoan(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(22, 0, 0))
	july, year := 7, 2025
	env.advances.advances["adv-1"] = advance.Advance{
		ID:             "adv-1",
		EmployeeRowID:  "emp-1",
		Amount:         decimal.NewFromInt(500_000),
		Status:         advance.StatusApproved,
		DeductionMonth: &july,
		DeductionYear:  &year,
	}
	env.loans.loans["loan-1"] = softloan.SoftLoan{
		ID:              "loan-1",
		EmployeeRowID:   "emp-1",
		TotalAmount:     decimal.NewFromInt(1_000_000),
		MonthlyAmount:   decimal.NewFromInt(100_000),
		RemainingAmount: decimal.NewFromInt(100_000),
		DurationMonths:  10,
		Status:          softloan.StatusActive,
		StartMonth:      10,
		StartYear:       2024,
	}

	resp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(context.Background(), resp.ID))

	adv, err := env.advances.GetByID(context.Background(), "adv-1")
	require.NoError(t, err)
	assert.Nil(t, adv.DeductedAt)

	loan, err := env.loans.GetByID(context.Background(), "loan-1")
	require.NoError(t, err)
	assert.True(t, loan.RemainingAmount.Equal(decimal.NewFromInt(100_000)))
	assert.Equal(t, softloan.StatusActive, loan.Status)
	assert.Nil(t, loan.CompletedAt)

	rows, err := env.deductions.ListByPeriod(context.Background(), "emp-1", 7, 2025)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// The period can be generated again after the revert.
	regen, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)
	assert.True(t, regen.TotalDeductions.Equal(resp.TotalDeductions))
}

func TestDeleteRestoresEachLoanItsOwnInstallment(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(22, 0, 0))
	env.loans.loans["loan-a"] = softloan.SoftLoan{
		ID:              "loan-a",
		EmployeeRowID:   "emp-1",
		TotalAmount:     decimal.NewFromInt(1_000_000),
		MonthlyAmount:   decimal.NewFromInt(100_000),
		RemainingAmount: decimal.NewFromInt(100_000),
		DurationMonths:  10,
		Status:          softloan.StatusActive,
		StartMonth:      10,
		StartYear:       2024,
	}
	// Second loan is on its partial final installment: only 30,000 left of a
	// 100,000 monthly amount.
	env.loans.loans["loan-b"] = softloan.SoftLoan{
		ID:              "loan-b",
		EmployeeRowID:   "emp-1",
		TotalAmount:     decimal.NewFromInt(500_000),
		MonthlyAmount:   decimal.NewFromInt(100_000),
		RemainingAmount: decimal.NewFromInt(30_000),
		DurationMonths:  5,
		Status:          softloan.StatusActive,
		StartMonth:      3,
		StartYear:       2025,
	}

	resp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalDeductions.Equal(decimal.NewFromInt(130_000)))

	// One generated row per loan, each recording that loan's payment.
	rows, err := env.deductions.ListByPeriod(context.Background(), "emp-1", 7, 2025)
	require.NoError(t, err)
	paid := map[string]decimal.Decimal{}
	for _, d := range rows {
		if d.Type == payroll.DeductionSoftLoan {
			require.NotNil(t, d.LoanID)
			paid[*d.LoanID] = d.Amount
		}
	}
	require.Len(t, paid, 2)
	assert.True(t, paid["loan-a"].Equal(decimal.NewFromInt(100_000)))
	assert.True(t, paid["loan-b"].Equal(decimal.NewFromInt(30_000)))

	require.NoError(t, env.svc.Delete(context.Background(), resp.ID))

	loanA, err := env.loans.GetByID(context.Background(), "loan-a")
	require.NoError(t, err)
	assert.True(t, loanA.RemainingAmount.Equal(decimal.NewFromInt(100_000)),
		"loan-a remaining was %s", loanA.RemainingAmount)
	assert.Equal(t, softloan.StatusActive, loanA.Status)

	loanB, err := env.loans.GetByID(context.Background(), "loan-b")
	require.NoError(t, err)
	assert.True(t, loanB.RemainingAmount.Equal(decimal.NewFromInt(30_000)),
		"loan-b remaining was %s", loanB.RemainingAmount)
	assert.Equal(t, softloan.StatusActive, loanB.Status)
	assert.Nil(t, loanB.CompletedAt)
}

func TestDeletePaidRecordConflicts(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(22, 0, 0))

	resp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)

	paid, err := env.svc.MarkPaid(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAID", paid.Status)

	err = env.svc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, payroll.ErrCannotDeletePaid)

	_, err = env.svc.MarkPaid(context.Background(), resp.ID)
	assert.ErrorIs(t, err, payroll.ErrNotPending)
}

func TestNetSalaryMayGoNegative(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(0, 22, 0))
	july, year := 7, 2025
	env.advances.advances["adv-1"] = advance.Advance{
		ID:             "adv-1",
		EmployeeRowID:  "emp-1",
		Amount:         decimal.NewFromInt(2_000_000),
		Status:         advance.StatusApproved,
		DeductionMonth: &july,
		DeductionYear:  &year,
	}

	resp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)
	assert.True(t, resp.NetSalary.IsNegative(), "net salary was %s", resp.NetSalary)
}

func TestAllowancesRaiseNet(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(22, 0, 0))
	_, err := env.svc.CreateAllowance(context.Background(), payroll.CreateLedgerEntryRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
		Type: "meal", Amount: decimal.NewFromInt(300_000),
	})
	require.NoError(t, err)

	resp, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAllowances.Equal(decimal.NewFromInt(300_000)))
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(5_300_000)))
}

func TestLedgerEditsRefusedAfterGeneration(t *testing.T) {
	env := newTestEnv(shiftEmployee(), monthRecords(22, 0, 0))

	_, err := env.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
	})
	require.NoError(t, err)

	_, err = env.svc.CreateAllowance(context.Background(), payroll.CreateLedgerEntryRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
		Type: "meal", Amount: decimal.NewFromInt(300_000),
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodFinalized)

	_, err = env.svc.CreateDeduction(context.Background(), payroll.CreateLedgerEntryRequest{
		EmployeeRowID: "emp-1", Month: 7, Year: 2025,
		Type: string(payroll.DeductionOther), Amount: decimal.NewFromInt(50_000),
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodFinalized)
}
