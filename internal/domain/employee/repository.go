package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	List(ctx context.Context, organizationCode string, activeOnly bool) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error

	// UpdateEmployeeID swaps the active identifier; callers pair it with an
	// EmployeeIDLog append inside the same transaction.
	UpdateEmployeeID(ctx context.Context, id string, newEmployeeID string) error

	// Delete removes the employee row. Dependent rows cascade at the store
	// level; the service decides whether deletion is allowed at all.
	Delete(ctx context.Context, id string) error
}

type EmployeeIDLogRepository interface {
	Create(ctx context.Context, log EmployeeIDLog) error
	ListByEmployee(ctx context.Context, employeeRowID string) ([]EmployeeIDLog, error)
}
