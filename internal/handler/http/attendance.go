package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/palmhr/attendance-backend-go/internal/domain/attendance"
	"github.com/palmhr/attendance-backend-go/internal/handler/http/response"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
	attendanceservice "github.com/palmhr/attendance-backend-go/internal/service/attendance"
)

// AttendanceHandler defines the attendance handler interface
type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StartOvertime(w http.ResponseWriter, r *http.Request)
	EndOvertime(w http.ResponseWriter, r *http.Request)
	SubmitLateReason(w http.ResponseWriter, r *http.Request)
	MarkAbsent(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyMonth(w http.ResponseWriter, r *http.Request)
	EmployeeMonth(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendanceservice.AttendanceServiceImpl
}

func NewAttendanceHandler(attendanceService *attendanceservice.AttendanceServiceImpl) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.CheckIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in", rec)
}

func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", rec)
}

func (h *attendanceHandlerImpl) StartOvertime(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.StartOvertime(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime started", rec)
}

func (h *attendanceHandlerImpl) EndOvertime(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.EndOvertime(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime ended", rec)
}

func (h *attendanceHandlerImpl) SubmitLateReason(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitLateReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.AttendanceID = chi.URLParam(r, "id")

	rec, err := h.attendanceService.SubmitLateReason(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late reason submitted", rec)
}

type markAbsentRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (h *attendanceHandlerImpl) MarkAbsent(w http.ResponseWriter, r *http.Request) {
	var req markAbsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	rec, err := h.attendanceService.MarkAbsent(r.Context(), req.EmployeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence recorded", rec)
}

func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rec)
}

func (h *attendanceHandlerImpl) MyMonth(w http.ResponseWriter, r *http.Request) {
	identity, err := authctx.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	now := time.Now()
	month := getIntQueryParam(r, "month", int(now.Month()))
	year := getIntQueryParam(r, "year", now.Year())

	records, err := h.attendanceService.ListMonth(r.Context(), identity.EmployeeRowID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *attendanceHandlerImpl) EmployeeMonth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := getIntQueryParam(r, "month", int(now.Month()))
	year := getIntQueryParam(r, "year", now.Year())

	records, err := h.attendanceService.ListMonth(r.Context(), chi.URLParam(r, "id"), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.attendanceService.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
