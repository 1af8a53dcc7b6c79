package advance

import (
	"context"
	"fmt"

	"github.com/palmhr/attendance-backend-go/internal/domain/advance"
	"github.com/palmhr/attendance-backend-go/internal/domain/notification"
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type AdvanceServiceImpl struct {
	tx       database.Transactor
	repo     advance.AdvanceRepository
	userRepo user.UserRepository
	notifier notification.Service
}

func NewAdvanceService(
	tx database.Transactor,
	repo advance.AdvanceRepository,
	userRepo user.UserRepository,
	notifier notification.Service,
) *AdvanceServiceImpl {
	return &AdvanceServiceImpl{tx: tx, repo: repo, userRepo: userRepo, notifier: notifier}
}

// Request files a salary advance for the caller. It starts PENDING; an admin
// assigns the repayment period on approval.
func (s *AdvanceServiceImpl) Request(ctx context.Context, req advance.RequestAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	created, err := s.repo.Create(ctx, advance.Advance{
		EmployeeRowID: identity.EmployeeRowID,
		Amount:        req.Amount,
		RequestMonth:  req.Month,
		RequestYear:   req.Year,
		Status:        advance.StatusPending,
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	return advance.ToResponse(created), nil
}

// Decide approves or rejects a pending advance. Approval pins the future
// payroll period the advance will be deducted from.
func (s *AdvanceServiceImpl) Decide(ctx context.Context, req advance.DecideAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	var adv advance.Advance
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if current.Status != advance.StatusPending {
			return advance.ErrNotPending
		}

		if req.Approve {
			current.Status = advance.StatusApproved
			current.DeductionMonth = req.DeductionMonth
			current.DeductionYear = req.DeductionYear
		} else {
			current.Status = advance.StatusRejected
		}

		if err := s.repo.Update(txCtx, current); err != nil {
			return err
		}
		adv = current
		return nil
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	if account, err := s.userRepo.GetByEmployeeRowID(ctx, adv.EmployeeRowID); err == nil {
		verdict := "approved"
		if !req.Approve {
			verdict = "rejected"
		}
		s.notifier.Notify(ctx, account.ID, notification.TypeAdvanceDecided,
			"Advance request decided",
			fmt.Sprintf("Your advance request of %s was %s.", adv.Amount.StringFixed(2), verdict))
	}

	return advance.ToResponse(adv), nil
}

// ListMine returns the caller's advances.
func (s *AdvanceServiceImpl) ListMine(ctx context.Context) ([]advance.AdvanceResponse, error) {
	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.listByEmployee(ctx, identity.EmployeeRowID)
}

// ListByEmployee returns one employee's advances; admin surface.
func (s *AdvanceServiceImpl) ListByEmployee(ctx context.Context, employeeRowID string) ([]advance.AdvanceResponse, error) {
	return s.listByEmployee(ctx, employeeRowID)
}

func (s *AdvanceServiceImpl) listByEmployee(ctx context.Context, employeeRowID string) ([]advance.AdvanceResponse, error) {
	advances, err := s.repo.ListByEmployee(ctx, employeeRowID)
	if err != nil {
		return nil, err
	}

	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, adv := range advances {
		responses = append(responses, advance.ToResponse(adv))
	}
	return responses, nil
}
