package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/palmhr/attendance-backend-go/internal/domain/softloan"
	"github.com/palmhr/attendance-backend-go/internal/handler/http/response"
	softloanservice "github.com/palmhr/attendance-backend-go/internal/service/softloan"
)

// SoftLoanHandler defines the soft loan handler interface
type SoftLoanHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type softLoanHandlerImpl struct {
	loanService *softloanservice.SoftLoanServiceImpl
}

func NewSoftLoanHandler(loanService *softloanservice.SoftLoanServiceImpl) SoftLoanHandler {
	return &softLoanHandlerImpl{loanService: loanService}
}

func (h *softLoanHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req softloan.RequestLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.loanService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Loan requested", created)
}

func (h *softLoanHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	activated, err := h.loanService.Activate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Loan activated", activated)
}

func (h *softLoanHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loans)
}

func (h *softLoanHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanService.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loans)
}
