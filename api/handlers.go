/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the attendance store and the computation engine via REST API.
  Handles HTTP request/response, JSON serialization, and delegates all
  computation to the engine package.

ENDPOINTS:
  Employees:
    GET    /api/employees                     List all employees
    POST   /api/employees                     Create or replace employee
    GET    /api/employees/{id}                Get employee
    DELETE /api/employees/{id}                Delete employee

  Attendance:
    GET    /api/employees/{id}/records        Records for ?month=YYYY-MM
    POST   /api/employees/{id}/records        Upsert one employee-day
    DELETE /api/employees/{id}/records/{date} Delete one employee-day

  Reporting (computed per request, never stored):
    GET    /api/employees/{id}/payroll        Payroll summary for ?month=
    GET    /api/employees/{id}/register       Day-by-day register for ?month=
    GET    /api/employees/{id}/leave-usage    Quota usage for ?year=

  Holidays:
    GET    /api/holidays                      Holidays for ?year=YYYY
    POST   /api/holidays                      Add holiday
    DELETE /api/holidays/{id}                 Delete holiday

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed times, unknown statuses, invalid configuration, bad input
  - 404: Employee/record/holiday not found
  - 409: Second holiday on the same date
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    store.Store
	validate *validator.Validate
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(st store.Store) *Handler {
	return &Handler{
		Store:    st,
		validate: validator.New(),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = employeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, employeeDTO(emp))
}

// SaveEmployee creates or replaces an employee.
func (h *Handler) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	offs := make([]time.Weekday, len(req.WeeklyOffs))
	for i, o := range req.WeeklyOffs {
		offs[i] = time.Weekday(o)
	}
	emp := engine.Employee{
		ID:                  req.ID,
		Name:                req.Name,
		MonthlySalary:       req.MonthlySalary,
		OTRate:              req.OTRate,
		DailyWorkHours:      req.DailyWorkHours,
		WorkingDaysPerMonth: req.WorkingDaysPerMonth,
		WeeklyOffs:          offs,
		BreakDeductionHours: req.BreakDeductionHours,
		Quotas: engine.LeaveQuotas{
			SickLeave:   req.Quotas.SickLeave,
			PaidLeave:   req.Quotas.PaidLeave,
			CasualLeave: req.Quotas.CasualLeave,
		},
	}
	if err := emp.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee configuration", err)
		return
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, employeeDTO(emp))
}

// DeleteEmployee removes an employee.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the holidays of one calendar year.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year (use ?year=YYYY)", err)
		return
	}

	holidays, err := h.Store.ListHolidays(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = holidayDTO(hol)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a holiday to the calendar.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	holiday := engine.Holiday{ID: uuid.NewString(), Date: date, Name: req.Name}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		if errors.Is(err, store.ErrDuplicateHoliday) {
			writeError(w, http.StatusConflict, "A holiday already exists for that date", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, holidayDTO(holiday))
}

// DeleteHoliday removes a holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

// ListRecords returns an employee's records for one month.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	period, err := monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use ?month=YYYY-MM)", err)
		return
	}

	records, err := h.Store.ListRecords(r.Context(), chi.URLParam(r, "id"), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	dtos := make([]RecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = recordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpsertRecord writes one employee-day. The write replaces any existing
// record for that day (last writer wins) and recomputes derived hours.
func (h *Handler) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	var req UpsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	employeeID := chi.URLParam(r, "id")
	emp, err := h.Store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.writeStoreError(w, "Failed to get employee", err)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	status, err := engine.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown attendance status", err)
		return
	}

	rec := engine.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Notes:      req.Notes,
	}
	if err := engine.DeriveHours(&rec, emp); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid punch times", err)
		return
	}

	if err := h.Store.UpsertRecord(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save record", err)
		return
	}
	writeJSON(w, http.StatusOK, recordDTO(rec))
}

// DeleteRecord removes one employee-day.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	date, err := engine.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	if err := h.Store.DeleteRecord(r.Context(), chi.URLParam(r, "id"), date); err != nil {
		h.writeStoreError(w, "Failed to delete record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REPORTING HANDLERS - Computed per request from a fresh snapshot
// =============================================================================

// GetPayroll computes the payroll summary for one employee and month.
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	period, err := monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use ?month=YYYY-MM)", err)
		return
	}

	employeeID := chi.URLParam(r, "id")
	emp, err := h.Store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.writeStoreError(w, "Failed to get employee", err)
		return
	}

	records, err := h.Store.ListRecords(r.Context(), employeeID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	summary, err := engine.AggregatePayroll(records, emp)
	if err != nil {
		h.writeEngineError(w, "Failed to compute payroll", err)
		return
	}
	summary.Period = period

	writeJSON(w, http.StatusOK, payrollSummaryDTO(summary, r.URL.Query().Get("month")))
}

// GetRegister returns the day-by-day register for one employee and month.
func (h *Handler) GetRegister(w http.ResponseWriter, r *http.Request) {
	period, err := monthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use ?month=YYYY-MM)", err)
		return
	}

	employeeID := chi.URLParam(r, "id")
	emp, err := h.Store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.writeStoreError(w, "Failed to get employee", err)
		return
	}

	holidays, err := h.Store.ListHolidays(r.Context(), period.Start.Year())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	records, err := h.Store.ListRecords(r.Context(), employeeID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	entries, err := engine.BuildRegister(period, emp, holidays, records)
	if err != nil {
		h.writeEngineError(w, "Failed to build register", err)
		return
	}

	dtos := make([]RegisterEntryDTO, len(entries))
	for i, e := range entries {
		dto := RegisterEntryDTO{
			Date:     e.Date.String(),
			Status:   string(e.Status),
			Inferred: e.Inferred,
		}
		if e.Record != nil {
			rec := recordDTO(*e.Record)
			dto.Record = &rec
		}
		dtos[i] = dto
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetLeaveUsage returns paid-leave usage against quotas for one year.
func (h *Handler) GetLeaveUsage(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year (use ?year=YYYY)", err)
		return
	}

	employeeID := chi.URLParam(r, "id")
	emp, err := h.Store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.writeStoreError(w, "Failed to get employee", err)
		return
	}

	yearPeriod := engine.Period{
		Start: engine.NewDate(year, time.January, 1),
		End:   engine.NewDate(year, time.December, 31),
	}
	records, err := h.Store.ListRecords(r.Context(), employeeID, yearPeriod)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	usage, err := engine.ComputeLeaveUsage(records, emp)
	if err != nil {
		h.writeEngineError(w, "Failed to compute leave usage", err)
		return
	}

	dtos := make([]LeaveUsageDTO, len(usage))
	for i, u := range usage {
		dtos[i] = LeaveUsageDTO{
			Status:    string(u.Status),
			Quota:     u.Quota,
			Used:      u.Used,
			Remaining: u.Remaining,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

func monthParam(r *http.Request) (engine.Period, error) {
	return engine.ParseMonth(r.URL.Query().Get("month"))
}

func yearParam(r *http.Request) (int, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, err
	}
	return year, nil
}

func (h *Handler) writeStoreError(w http.ResponseWriter, message string, err error) {
	if store.IsNotFound(err) {
		writeError(w, http.StatusNotFound, message, err)
		return
	}
	writeError(w, http.StatusInternalServerError, message, err)
}

func (h *Handler) writeEngineError(w http.ResponseWriter, message string, err error) {
	if engine.IsClientError(err) {
		writeError(w, http.StatusBadRequest, message, err)
		return
	}
	writeError(w, http.StatusInternalServerError, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
