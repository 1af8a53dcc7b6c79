package softloan

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/palmhr/attendance-backend-go/internal/domain/notification"
	"github.com/palmhr/attendance-backend-go/internal/domain/softloan"
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type SoftLoanServiceImpl struct {
	tx       database.Transactor
	repo     softloan.SoftLoanRepository
	userRepo user.UserRepository
	notifier notification.Service
}

func NewSoftLoanService(
	tx database.Transactor,
	repo softloan.SoftLoanRepository,
	userRepo user.UserRepository,
	notifier notification.Service,
) *SoftLoanServiceImpl {
	return &SoftLoanServiceImpl{tx: tx, repo: repo, userRepo: userRepo, notifier: notifier}
}

// Request files a loan for the caller. The monthly installment is fixed at
// request time as total divided by duration; it starts PENDING and repays
// nothing until activated.
func (s *SoftLoanServiceImpl) Request(ctx context.Context, req softloan.RequestLoanRequest) (softloan.LoanResponse, error) {
	if err := req.Validate(); err != nil {
		return softloan.LoanResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return softloan.LoanResponse{}, err
	}

	monthly := req.TotalAmount.DivRound(decimal.NewFromInt(int64(req.DurationMonths)), 2)

	created, err := s.repo.Create(ctx, softloan.SoftLoan{
		EmployeeRowID:   identity.EmployeeRowID,
		TotalAmount:     req.TotalAmount,
		MonthlyAmount:   monthly,
		RemainingAmount: req.TotalAmount,
		DurationMonths:  req.DurationMonths,
		Status:          softloan.StatusPending,
		StartMonth:      req.StartMonth,
		StartYear:       req.StartYear,
	})
	if err != nil {
		return softloan.LoanResponse{}, err
	}

	return softloan.ToResponse(created), nil
}

// Activate flips a PENDING loan to ACTIVE so payroll runs start consuming
// installments.
func (s *SoftLoanServiceImpl) Activate(ctx context.Context, id string) (softloan.LoanResponse, error) {
	var loan softloan.SoftLoan
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if current.Status != softloan.StatusPending {
			return softloan.ErrNotPending
		}

		current.Status = softloan.StatusActive
		if err := s.repo.Update(txCtx, current); err != nil {
			return err
		}
		loan = current
		return nil
	})
	if err != nil {
		return softloan.LoanResponse{}, err
	}

	if account, err := s.userRepo.GetByEmployeeRowID(ctx, loan.EmployeeRowID); err == nil {
		s.notifier.Notify(ctx, account.ID, notification.TypeLoanActivated,
			"Loan activated",
			fmt.Sprintf("Your loan of %s is active; %s will be deducted monthly starting %02d/%d.",
				loan.TotalAmount.StringFixed(2), loan.MonthlyAmount.StringFixed(2), loan.StartMonth, loan.StartYear))
	}

	return softloan.ToResponse(loan), nil
}

// ListMine returns the caller's loans.
func (s *SoftLoanServiceImpl) ListMine(ctx context.Context) ([]softloan.LoanResponse, error) {
	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.listByEmployee(ctx, identity.EmployeeRowID)
}

// ListByEmployee returns one employee's loans; admin surface.
func (s *SoftLoanServiceImpl) ListByEmployee(ctx context.Context, employeeRowID string) ([]softloan.LoanResponse, error) {
	return s.listByEmployee(ctx, employeeRowID)
}

func (s *SoftLoanServiceImpl) listByEmployee(ctx context.Context, employeeRowID string) ([]softloan.LoanResponse, error) {
	loans, err := s.repo.ListByEmployee(ctx, employeeRowID)
	if err != nil {
		return nil, err
	}

	responses := make([]softloan.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, softloan.ToResponse(loan))
	}
	return responses, nil
}
