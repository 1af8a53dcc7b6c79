package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeRowID(ctx context.Context, employeeRowID string) (User, error)
	DeleteByEmployeeRowID(ctx context.Context, employeeRowID string) error
}
