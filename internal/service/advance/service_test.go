package advance

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmhr/attendance-backend-go/internal/domain/advance"
	"github.com/palmhr/attendance-backend-go/internal/domain/notification"
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memAdvanceRepo struct {
	mu       sync.Mutex
	seq      int
	advances map[string]advance.Advance
}

func (m *memAdvanceRepo) Create(_ context.Context, adv advance.Advance) (advance.Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	adv.ID = fmt.Sprintf("adv-%d", m.seq)
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

func (m *memAdvanceRepo) ListDeductibleFor(context.Context, string, int, int) ([]advance.Advance, error) {
	panic("not implemented")
}

func (m *memAdvanceRepo) Update(_ context.Context, adv advance.Advance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advances[adv.ID] = adv
	return nil
}

func (m *memAdvanceRepo) MarkDeducted(context.Context, string) error { panic("not implemented") }

func (m *memAdvanceRepo) ClearDeducted(context.Context, string) error { panic("not implemented") }

func (m *memAdvanceRepo) ListDeductedByPeriod(context.Context, string, int, int) ([]advance.Advance, error) {
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

func newTestService() (*AdvanceServiceImpl, *memAdvanceRepo, *recordingNotifier) {
	repo := &memAdvanceRepo{advances: map[string]advance.Advance{}}
	notifier := &recordingNotifier{}
	return NewAdvanceService(passthroughTx{}, repo, fakeUserRepo{}, notifier), repo, notifier
}

func TestRequestStartsPending(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.Request(employeeCtx(), advance.RequestAdvanceRequest{
		Amount: decimal.NewFromInt(500_000),
		Month:  6,
		Year:   2025,
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "emp-1", resp.EmployeeRowID)
	assert.Nil(t, resp.DeductionMonth)
}

func TestRequestRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Request(employeeCtx(), advance.RequestAdvanceRequest{
		Amount: decimal.Zero,
		Month:  6,
		Year:   2025,
	})
	assert.Error(t, err)
}

func TestApproveAssignsDeductionPeriod(t *testing.T) {
	svc, _, notifier := newTestService()

	created, err := svc.Request(employeeCtx(), advance.RequestAdvanceRequest{
		Amount: decimal.NewFromInt(500_000),
		Month:  6,
		Year:   2025,
	})
	require.NoError(t, err)

	month, year := 7, 2025
	decided, err := svc.Decide(context.Background(), advance.DecideAdvanceRequest{
		ID:             created.ID,
		Approve:        true,
		DeductionMonth: &month,
		DeductionYear:  &year,
	})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", decided.Status)
	assert.Equal(t, 7, *decided.DeductionMonth)
	assert.Equal(t, 2025, *decided.DeductionYear)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notification.TypeAdvanceDecided, notifier.sent[0])
}

func TestApproveRequiresDeductionPeriod(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Request(employeeCtx(), advance.RequestAdvanceRequest{
		Amount: decimal.NewFromInt(500_000),
		Month:  6,
		Year:   2025,
	})
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), advance.DecideAdvanceRequest{
		ID:      created.ID,
		Approve: true,
	})
	assert.Error(t, err)
}

func TestDecideIsPendingOnly(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Request(employeeCtx(), advance.RequestAdvanceRequest{
		Amount: decimal.NewFromInt(500_000),
		Month:  6,
		Year:   2025,
	})
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), advance.DecideAdvanceRequest{ID: created.ID})
	require.NoError(t, err)

	month, year := 7, 2025
	_, err = svc.Decide(context.Background(), advance.DecideAdvanceRequest{
		ID:             created.ID,
		Approve:        true,
		DeductionMonth: &month,
		DeductionYear:  &year,
	})
	assert.ErrorIs(t, err, advance.ErrNotPending)
}

func TestListMine(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Request(employeeCtx(), advance.RequestAdvanceRequest{
		Amount: decimal.NewFromInt(100_000),
		Month:  6,
		Year:   2025,
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(employeeCtx())
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
