package softloan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/palmhr/attendance-backend-go/internal/pkg/validator"
)

type RequestLoanRequest struct {
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DurationMonths int             `json:"duration_months"`
	StartMonth     int             `json:"start_month"`
	StartYear      int             `json:"start_year"`
}

func (r *RequestLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.TotalAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "total_amount", Message: "must be positive"})
	}
	if r.DurationMonths < 1 {
		errs = append(errs, validator.ValidationError{Field: "duration_months", Message: "must be at least 1"})
	}
	if !validator.IsValidPeriod(r.StartMonth, r.StartYear) {
		errs = append(errs, validator.ValidationError{Field: "start_period", Message: "month must be 1-12 and year >= 1900"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoanResponse struct {
	ID              string          `json:"id"`
	EmployeeRowID   string          `json:"employee_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	MonthlyAmount   decimal.Decimal `json:"monthly_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	DurationMonths  int             `json:"duration_months"`
	Status          string          `json:"status"`
	StartMonth      int             `json:"start_month"`
	StartYear       int             `json:"start_year"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}

func ToResponse(l SoftLoan) LoanResponse {
	return LoanResponse{
		ID:              l.ID,
		EmployeeRowID:   l.EmployeeRowID,
		TotalAmount:     l.TotalAmount,
		MonthlyAmount:   l.MonthlyAmount,
		RemainingAmount: l.RemainingAmount,
		DurationMonths:  l.DurationMonths,
		Status:          string(l.Status),
		StartMonth:      l.StartMonth,
		StartYear:       l.StartYear,
		CompletedAt:     l.CompletedAt,
	}
}
