package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAdminAccessRequired = errors.New("admin access required")
	ErrSupervisorRequired  = errors.New("supervisor access required")
	ErrRoleNotPermitted    = errors.New("role is not permitted to perform this action")
	ErrEmailExists         = errors.New("email already registered")
)
