package advance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/palmhr/attendance-backend-go/internal/pkg/validator"
)

type RequestAdvanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Month  int             `json:"month"`
	Year   int             `json:"year"`
}

func (r *RequestAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if !validator.IsValidPeriod(r.Month, r.Year) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year >= 1900"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideAdvanceRequest struct {
	ID             string `json:"-"`
	Approve        bool   `json:"approve"`
	DeductionMonth *int   `json:"deduction_month,omitempty"`
	DeductionYear  *int   `json:"deduction_year,omitempty"`
}

func (r *DecideAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Approve {
		if r.DeductionMonth == nil || r.DeductionYear == nil {
			errs = append(errs, validator.ValidationError{Field: "deduction_period", Message: "is required when approving"})
		} else if !validator.IsValidPeriod(*r.DeductionMonth, *r.DeductionYear) {
			errs = append(errs, validator.ValidationError{Field: "deduction_period", Message: "month must be 1-12 and year >= 1900"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceResponse struct {
	ID             string          `json:"id"`
	EmployeeRowID  string          `json:"employee_id"`
	Amount         decimal.Decimal `json:"amount"`
	RequestMonth   int             `json:"request_month"`
	RequestYear    int             `json:"request_year"`
	Status         string          `json:"status"`
	DeductionMonth *int            `json:"deduction_month,omitempty"`
	DeductionYear  *int            `json:"deduction_year,omitempty"`
	DeductedAt     *time.Time      `json:"deducted_at,omitempty"`
}

func ToResponse(a Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:             a.ID,
		EmployeeRowID:  a.EmployeeRowID,
		Amount:         a.Amount,
		RequestMonth:   a.RequestMonth,
		RequestYear:    a.RequestYear,
		Status:         string(a.Status),
		DeductionMonth: a.DeductionMonth,
		DeductionYear:  a.DeductionYear,
		DeductedAt:     a.DeductedAt,
	}
}
