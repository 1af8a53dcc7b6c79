package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) *AuthServiceImpl {
	return &AuthServiceImpl{userRepo: userRepo, jwtService: jwtService}
}

// Login verifies credentials and issues an access/refresh token pair. A
// missing account and a wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, req user.LoginRequest) (user.TokenResponse, user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.TokenResponse{}, user.UserResponse{}, err
	}

	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return user.TokenResponse{}, user.UserResponse{}, user.ErrInvalidCredentials
		}
		return user.TokenResponse{}, user.UserResponse{}, err
	}

	if !account.IsActive {
		return user.TokenResponse{}, user.UserResponse{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return user.TokenResponse{}, user.UserResponse{}, user.ErrInvalidCredentials
	}

	access, accessExp, err := s.jwtService.GenerateAccessToken(account.ID, account.Email, account.EmployeeRowID, account.Role)
	if err != nil {
		return user.TokenResponse{}, user.UserResponse{}, fmt.Errorf("generate access token: %w", err)
	}
	refresh, refreshExp, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return user.TokenResponse{}, user.UserResponse{}, fmt.Errorf("generate refresh token: %w", err)
	}

	tokens := user.TokenResponse{
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExp,
	}

	return tokens, user.ToResponse(account), nil
}

// CreateUser provisions an account; admin surface.
func (s *AuthServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		EmployeeRowID: req.EmployeeRowID,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Role:          user.Role(req.Role),
		IsActive:      true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}
