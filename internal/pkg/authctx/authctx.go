package authctx

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"

	"github.com/palmhr/attendance-backend-go/internal/domain/user"
)

var ErrMissingIdentity = errors.New("request identity is missing or invalid")

// Identity is the authenticated caller, extracted from verified JWT claims.
// The role here is the only role the core ever trusts.
type Identity struct {
	UserID        string
	EmployeeRowID string
	Role          user.Role
}

type identityKey struct{}

// WithIdentity returns a context carrying an already-resolved identity. It
// takes precedence over JWT claims in FromContext.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext extracts the caller identity, preferring one placed by
// WithIdentity and falling back to the request's verified JWT claims.
func FromContext(ctx context.Context) (Identity, error) {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrMissingIdentity
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrMissingIdentity
	}

	roleStr, ok := claims["role"].(string)
	role := user.Role(roleStr)
	if !ok || !role.IsValid() {
		return Identity{}, ErrMissingIdentity
	}

	employeeRowID, _ := claims["employee_id"].(string)

	return Identity{UserID: userID, EmployeeRowID: employeeRowID, Role: role}, nil
}
