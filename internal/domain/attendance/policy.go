package attendance

import (
	"github.com/palmhr/attendance-backend-go/internal/domain/user"
)

// maxAssistantForemanOvertimeMinutes caps the overtime an assistant foreman
// may decide on their own.
const maxAssistantForemanOvertimeMinutes = 120

// CanDecideOvertime is the single authorization policy for overtime
// approve/reject transitions. It is evaluated on the authenticated role only,
// never on client input.
func CanDecideOvertime(role user.Role, rec Record) bool {
	switch role {
	case user.RoleAdmin, user.RoleManager, user.RoleForeman:
		return true
	case user.RoleAssistantForeman:
		return !rec.IsSundayWork && rec.OvertimeMinutes <= maxAssistantForemanOvertimeMinutes
	default:
		return false
	}
}

// CanDecideLateReason is the authorization policy for late-reason
// approve/reject transitions.
func CanDecideLateReason(role user.Role) bool {
	switch role {
	case user.RoleAdmin, user.RoleManager, user.RoleForeman:
		return true
	default:
		return false
	}
}
