package http

import (
	"encoding/json"
	"net/http"

	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/handler/http/response"
	authservice "github.com/palmhr/attendance-backend-go/internal/service/auth"
)

// AuthHandler defines the auth handler interface
type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	CreateUser(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService *authservice.AuthServiceImpl
}

func NewAuthHandler(authService *authservice.AuthServiceImpl) AuthHandler {
	return &authHandlerImpl{authService: authService}
}

type loginResponse struct {
	Tokens user.TokenResponse `json:"tokens"`
	User   user.UserResponse  `json:"user"`
}

func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	tokens, profile, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loginResponse{Tokens: tokens, User: profile})
}

func (h *authHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.authService.CreateUser(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", created)
}
