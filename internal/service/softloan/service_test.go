package softloan

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmhr/attendance-backend-go/internal/domain/notification"
	"github.com/palmhr/attendance-backend-go/internal/domain/softloan"
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memLoanRepo struct {
	mu    sync.Mutex
	seq   int
	loans map[string]softloan.SoftLoan
}

func (m *memLoanRepo) Create(_ context.Context, loan softloan.SoftLoan) (softloan.SoftLoan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	loan.ID = fmt.Sprintf("loan-%d", m.seq)
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

func (m *memLoanRepo) ListActiveFor(context.Context, string, int, int) ([]softloan.SoftLoan, error) {
	panic("not implemented")
}

func (m *memLoanRepo) Update(_ context.Context, loan softloan.SoftLoan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[loan.ID] = loan
	return nil
}

func (m *memLoanRepo) ApplyInstallment(context.Context, string, decimal.Decimal) error {
	panic("not implemented")
}

func (m *memLoanRepo) RestoreInstallment(context.Context, string, decimal.Decimal) error {
	panic("not implemented")
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(context.Context, user.User) (user.User, error) { panic("not implemented") }

func (fakeUserRepo) GetByID(context.Context, string) (user.User, error) { panic("not implemented") }

func (fakeUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	panic("not implemented")
}

func (fakeUserRepo) GetByEmployeeRowID(_ context.Context, employeeRowID string) (user.User, error) {
	return user.User{ID: "user-for-" + employeeRowID}, nil
}

func (fakeUserRepo) DeleteByEmployeeRowID(context.Context, string) error { panic("not implemented") }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.NotificationType
}

func (r *recordingNotifier) Notify(_ context.Context, _ string, ntype notification.NotificationType, _, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, ntype)
}

func (r *recordingNotifier) List(context.Context, string, bool) ([]*notification.Notification, error) {
	panic("not implemented")
}

func (r *recordingNotifier) UnreadCount(context.Context, string) (int, error) {
	panic("not implemented")
}

func (r *recordingNotifier) MarkRead(context.Context, []string, string) error {
	panic("not implemented")
}

func employeeCtx() context.Context {
	return authctx.WithIdentity(context.Background(), authctx.Identity{
		UserID:        "user-1",
		EmployeeRowID: "emp-1",
		Role:          user.RoleEmployee,
	})
}

func newTestService() (*SoftLoanServiceImpl, *recordingNotifier) {
	notifier := &recordingNotifier{}
	repo := &memLoanRepo{loans: map[string]softloan.SoftLoan{}}
	return NewSoftLoanService(passthroughTx{}, repo, fakeUserRepo{}, notifier), notifier
}

func TestRequestFixesMonthlyInstallment(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Request(employeeCtx(), softloan.RequestLoanRequest{
		TotalAmount:    decimal.NewFromInt(1_000_000),
		DurationMonths: 10,
		StartMonth:     8,
		StartYear:      2025,
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", resp.Status)
	assert.True(t, resp.MonthlyAmount.Equal(decimal.NewFromInt(100_000)))
	assert.True(t, resp.RemainingAmount.Equal(decimal.NewFromInt(1_000_000)))
}

func TestRequestRejectsZeroDuration(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Request(employeeCtx(), softloan.RequestLoanRequest{
		TotalAmount:    decimal.NewFromInt(1_000_000),
		DurationMonths: 0,
		StartMonth:     8,
		StartYear:      2025,
	})
	assert.Error(t, err)
}

func TestActivatePendingLoan(t *testing.T) {
	svc, notifier := newTestService()

	created, err := svc.Request(employeeCtx(), softloan.RequestLoanRequest{
		TotalAmount:    decimal.NewFromInt(1_000_000),
		DurationMonths: 10,
		StartMonth:     8,
		StartYear:      2025,
	})
	require.NoError(t, err)

	activated, err := svc.Activate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", activated.Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notification.TypeLoanActivated, notifier.sent[0])

	_, err = svc.Activate(context.Background(), created.ID)
	assert.ErrorIs(t, err, softloan.ErrNotPending)
}

func TestListMine(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Request(employeeCtx(), softloan.RequestLoanRequest{
		TotalAmount:    decimal.NewFromInt(600_000),
		DurationMonths: 6,
		StartMonth:     9,
		StartYear:      2025,
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(employeeCtx())
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
