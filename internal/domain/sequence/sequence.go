package sequence

import (
	"context"
	"fmt"
)

// OrganizationSequence is the per-organization counter row backing employee
// identifier issuance. last_value only ever moves forward; values are never
// reused, even after an employee is deleted.
type OrganizationSequence struct {
	OrganizationCode string
	LastValue        int64
}

// SequenceRepository issues the next sequence value for an organization.
// Next must be atomic against concurrent registrations for the same
// organization and must never block callers working on other organizations.
type SequenceRepository interface {
	Next(ctx context.Context, organizationCode string) (int64, error)
}

// FormatEmployeeID renders the externally visible identifier,
// e.g. ("CTU", 1) -> "CTU-001".
func FormatEmployeeID(organizationCode string, seq int64) string {
	return fmt.Sprintf("%s-%03d", organizationCode, seq)
}
