package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeIDExists  = errors.New("employee identifier already exists")
	ErrEmployeeInactive  = errors.New("employee is inactive")
	ErrInvalidEmployeeID = errors.New("employee identifier format is invalid")
	ErrSameOrganization  = errors.New("employee already belongs to this organization")
	ErrHasPayrollHistory = errors.New("employee has payroll history and cannot be deleted")
	ErrWageBelowMinimum  = errors.New("wage is below the configured minimum")
)
