package user

import "time"

type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleManager          Role = "MANAGER"
	RoleForeman          Role = "FOREMAN"
	RoleAssistantForeman Role = "ASSISTANT_FOREMAN"
	RoleEmployee         Role = "EMPLOYEE"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleForeman, RoleAssistantForeman, RoleEmployee:
		return true
	}
	return false
}

// IsSupervisor reports whether the role may act on other employees' records.
func (r Role) IsSupervisor() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleForeman, RoleAssistantForeman:
		return true
	}
	return false
}

type User struct {
	ID            string
	EmployeeRowID *string
	Email         string
	PasswordHash  string
	Role          Role
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
