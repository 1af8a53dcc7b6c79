package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/palmhr/attendance-backend-go/internal/domain/attendance"
	"github.com/palmhr/attendance-backend-go/internal/handler/http/response"
	approvalservice "github.com/palmhr/attendance-backend-go/internal/service/approval"
)

// ApprovalHandler defines the approval handler interface
type ApprovalHandler interface {
	ApproveOvertime(w http.ResponseWriter, r *http.Request)
	RejectOvertime(w http.ResponseWriter, r *http.Request)
	ApproveLateReason(w http.ResponseWriter, r *http.Request)
	RejectLateReason(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	approvalService *approvalservice.ApprovalServiceImpl
}

func NewApprovalHandler(approvalService *approvalservice.ApprovalServiceImpl) ApprovalHandler {
	return &approvalHandlerImpl{approvalService: approvalService}
}

func decisionRequest(r *http.Request) (attendance.DecisionRequest, bool) {
	var req attendance.DecisionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, false
		}
	}
	req.AttendanceID = chi.URLParam(r, "id")
	return req, true
}

func (h *approvalHandlerImpl) ApproveOvertime(w http.ResponseWriter, r *http.Request) {
	req, ok := decisionRequest(r)
	if !ok {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.approvalService.ApproveOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime approved", rec)
}

func (h *approvalHandlerImpl) RejectOvertime(w http.ResponseWriter, r *http.Request) {
	req, ok := decisionRequest(r)
	if !ok {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.approvalService.RejectOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime rejected", rec)
}

func (h *approvalHandlerImpl) ApproveLateReason(w http.ResponseWriter, r *http.Request) {
	req, ok := decisionRequest(r)
	if !ok {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.approvalService.ApproveLateReason(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late reason approved", rec)
}

func (h *approvalHandlerImpl) RejectLateReason(w http.ResponseWriter, r *http.Request) {
	req, ok := decisionRequest(r)
	if !ok {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.approvalService.RejectLateReason(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late reason rejected", rec)
}
