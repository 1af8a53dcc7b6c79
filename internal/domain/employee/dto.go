package employee

import (
	"github.com/shopspring/decimal"

	"github.com/palmhr/attendance-backend-go/internal/pkg/validator"
)

type RegisterEmployeeRequest struct {
	OrganizationCode   string           `json:"organization_code"`
	Name               string           `json:"name"`
	CompensationMode   string           `json:"compensation_mode"`
	MonthlySalary      *decimal.Decimal `json:"monthly_salary,omitempty"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	BPJSHealthRate     *decimal.Decimal `json:"bpjs_health_rate,omitempty"`
	BPJSEmploymentRate *decimal.Decimal `json:"bpjs_employment_rate,omitempty"`
}

func (r *RegisterEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidOrganizationCode(r.OrganizationCode) {
		errs = append(errs, validator.ValidationError{Field: "organization_code", Message: "must be 2-4 uppercase letters"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	mode := CompensationMode(r.CompensationMode)
	if !mode.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "compensation_mode", Message: "must be 'SHIFT' or 'NON_SHIFT'"})
	}
	if mode == ModeShift && (r.MonthlySalary == nil || r.MonthlySalary.IsNegative()) {
		errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "is required for SHIFT employees and must be non-negative"})
	}
	if mode == ModeNonShift && (r.HourlyRate == nil || r.HourlyRate.IsNegative()) {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "is required for NON_SHIFT employees and must be non-negative"})
	}
	if r.BPJSHealthRate != nil && r.BPJSHealthRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bpjs_health_rate", Message: "must be non-negative"})
	}
	if r.BPJSEmploymentRate != nil && r.BPJSEmploymentRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bpjs_employment_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                 string
	Name               *string          `json:"name,omitempty"`
	MonthlySalary      *decimal.Decimal `json:"monthly_salary,omitempty"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	BPJSHealthRate     *decimal.Decimal `json:"bpjs_health_rate,omitempty"`
	BPJSEmploymentRate *decimal.Decimal `json:"bpjs_employment_rate,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.MonthlySalary != nil && r.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "must be non-negative"})
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransferEmployeeRequest struct {
	ID                  string
	NewOrganizationCode string `json:"new_organization_code"`
	Reason              string `json:"reason"`
}

func (r *TransferEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidOrganizationCode(r.NewOrganizationCode) {
		errs = append(errs, validator.ValidationError{Field: "new_organization_code", Message: "must be 2-4 uppercase letters"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	OrganizationCode   string          `json:"organization_code"`
	Name               string          `json:"name"`
	CompensationMode   string          `json:"compensation_mode"`
	MonthlySalary      decimal.Decimal `json:"monthly_salary"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	BPJSHealthRate     decimal.Decimal `json:"bpjs_health_rate"`
	BPJSEmploymentRate decimal.Decimal `json:"bpjs_employment_rate"`
	IsActive           bool            `json:"is_active"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 e.ID,
		EmployeeID:         e.EmployeeID,
		OrganizationCode:   e.OrganizationCode,
		Name:               e.Name,
		CompensationMode:   string(e.CompensationMode),
		MonthlySalary:      e.MonthlySalary,
		HourlyRate:         e.HourlyRate,
		BPJSHealthRate:     e.BPJSHealthRate,
		BPJSEmploymentRate: e.BPJSEmploymentRate,
		IsActive:           e.IsActive,
	}
}
