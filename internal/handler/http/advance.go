package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/palmhr/attendance-backend-go/internal/domain/advance"
	"github.com/palmhr/attendance-backend-go/internal/handler/http/response"
	advanceservice "github.com/palmhr/attendance-backend-go/internal/service/advance"
)

// AdvanceHandler defines the salary advance handler interface
type AdvanceHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type advanceHandlerImpl struct {
	advanceService *advanceservice.AdvanceServiceImpl
}

func NewAdvanceHandler(advanceService *advanceservice.AdvanceServiceImpl) AdvanceHandler {
	return &advanceHandlerImpl{advanceService: advanceService}
}

func (h *advanceHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req advance.RequestAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.advanceService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance requested", created)
}

func (h *advanceHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req advance.DecideAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	decided, err := h.advanceService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance decided", decided)
}

func (h *advanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	advances, err := h.advanceService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, advances)
}

func (h *advanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	advances, err := h.advanceService.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, advances)
}
