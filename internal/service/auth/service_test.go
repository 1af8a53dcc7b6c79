package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	u.ID = "user-" + u.Email
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(context.Context, string) (user.User, error) {
	panic("not implemented")
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmployeeRowID(context.Context, string) (user.User, error) {
	panic("not implemented")
}

func (f *fakeUserRepo) DeleteByEmployeeRowID(context.Context, string) error {
	panic("not implemented")
}

func newTestService(t *testing.T) (*AuthServiceImpl, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{users: map[string]user.User{}}
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(repo, jwtService), repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users[email] = user.User{
		ID:           "user-" + email,
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		IsActive:     active,
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "worker@example.com", "correct-horse", true)

	tokens, profile, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "worker@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.AccessTokenExpiresAt, int64(0))
	assert.Equal(t, "worker@example.com", profile.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "worker@example.com", "correct-horse", true)

	_, _, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "worker@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownEmailIsIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "worker@example.com", "correct-horse", false)

	_, _, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "worker@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.CreateUser(context.Background(), user.CreateUserRequest{
		Email:    "new@example.com",
		Password: "long-enough-password",
		Role:     string(user.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", created.Role)

	stored := repo.users["new@example.com"]
	assert.NotEqual(t, "long-enough-password", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough-password")))
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateUser(context.Background(), user.CreateUserRequest{
		Email:    "bad-email",
		Password: "short",
		Role:     "SUPREME_LEADER",
	})
	assert.Error(t, err)
}
