/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry validator/v10 struct tags; handlers run them through
  Handler.validate before touching the store. Derived fields (total_hours,
  ot_hours) never appear on request types - the engine computes them.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// QuotasDTO mirrors engine.LeaveQuotas.
type QuotasDTO struct {
	SickLeave   int `json:"sick_leave" validate:"gte=0"`
	PaidLeave   int `json:"paid_leave" validate:"gte=0"`
	CasualLeave int `json:"casual_leave" validate:"gte=0"`
}

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	MonthlySalary       decimal.Decimal `json:"monthly_salary"`
	OTRate              decimal.Decimal `json:"ot_rate"`
	DailyWorkHours      decimal.Decimal `json:"daily_work_hours"`
	WorkingDaysPerMonth int             `json:"working_days_per_month"`
	WeeklyOffs          []int           `json:"weekly_offs"`
	BreakDeductionHours decimal.Decimal `json:"break_deduction_hours"`
	Quotas              QuotasDTO       `json:"quotas"`
}

// SaveEmployeeRequest creates or replaces an employee.
type SaveEmployeeRequest struct {
	ID                  string          `json:"id" validate:"required"`
	Name                string          `json:"name" validate:"required"`
	MonthlySalary       decimal.Decimal `json:"monthly_salary"`
	OTRate              decimal.Decimal `json:"ot_rate"`
	DailyWorkHours      decimal.Decimal `json:"daily_work_hours"`
	WorkingDaysPerMonth int             `json:"working_days_per_month" validate:"required,gt=0"`
	WeeklyOffs          []int           `json:"weekly_offs" validate:"dive,gte=0,lte=6"`
	BreakDeductionHours decimal.Decimal `json:"break_deduction_hours"`
	Quotas              QuotasDTO       `json:"quotas"`
}

func employeeDTO(e engine.Employee) EmployeeDTO {
	offs := make([]int, len(e.WeeklyOffs))
	for i, wd := range e.WeeklyOffs {
		offs[i] = int(wd)
	}
	return EmployeeDTO{
		ID:                  e.ID,
		Name:                e.Name,
		MonthlySalary:       e.MonthlySalary,
		OTRate:              e.OTRate,
		DailyWorkHours:      e.DailyWorkHours,
		WorkingDaysPerMonth: e.WorkingDaysPerMonth,
		WeeklyOffs:          offs,
		BreakDeductionHours: e.BreakDeductionHours,
		Quotas: QuotasDTO{
			SickLeave:   e.Quotas.SickLeave,
			PaidLeave:   e.Quotas.PaidLeave,
			CasualLeave: e.Quotas.CasualLeave,
		},
	}
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents a holiday calendar entry.
type HolidayDTO struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// CreateHolidayRequest adds a holiday. The server assigns the ID.
type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required"`
	Name string `json:"name" validate:"required"`
}

func holidayDTO(h engine.Holiday) HolidayDTO {
	return HolidayDTO{ID: h.ID, Date: h.Date.String(), Name: h.Name}
}

// =============================================================================
// ATTENDANCE RECORDS
// =============================================================================

// RecordDTO represents one attendance record, including derived hours.
type RecordDTO struct {
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	Status     string           `json:"status"`
	CheckIn    string           `json:"check_in,omitempty"`
	CheckOut   string           `json:"check_out,omitempty"`
	TotalHours *decimal.Decimal `json:"total_hours,omitempty"`
	OTHours    *decimal.Decimal `json:"ot_hours,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// UpsertRecordRequest writes one employee-day. Derived hours are computed
// server-side from the punches, never accepted from the client.
type UpsertRecordRequest struct {
	Date     string `json:"date" validate:"required"`
	Status   string `json:"status" validate:"required"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Notes    string `json:"notes"`
}

func recordDTO(rec engine.AttendanceRecord) RecordDTO {
	return RecordDTO{
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date.String(),
		Status:     string(rec.Status),
		CheckIn:    rec.CheckIn,
		CheckOut:   rec.CheckOut,
		TotalHours: rec.TotalHours,
		OTHours:    rec.OTHours,
		Notes:      rec.Notes,
	}
}

// =============================================================================
// PAYROLL / REGISTER / LEAVE
// =============================================================================

// PayrollSummaryDTO is the monthly aggregate returned to reporting clients.
// All values are computed by the engine; the API never re-derives them.
type PayrollSummaryDTO struct {
	EmployeeID    string          `json:"employee_id"`
	Month         string          `json:"month"`
	PresentDays   int             `json:"present_days"`
	HalfDays      int             `json:"half_days"`
	AbsentDays    int             `json:"absent_days"`
	LeaveDays     int             `json:"leave_days"`
	OffDays       int             `json:"off_days"`
	DeductionDays decimal.Decimal `json:"deduction_days"`
	TotalOTHours  decimal.Decimal `json:"total_ot_hours"`
	OTEarnings    decimal.Decimal `json:"ot_earnings"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetSalary     decimal.Decimal `json:"net_salary"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
	OTRateApplied decimal.Decimal `json:"ot_rate_applied"`
}

func payrollSummaryDTO(s engine.PayrollSummary, month string) PayrollSummaryDTO {
	return PayrollSummaryDTO{
		EmployeeID:    s.EmployeeID,
		Month:         month,
		PresentDays:   s.PresentDays,
		HalfDays:      s.HalfDays,
		AbsentDays:    s.AbsentDays,
		LeaveDays:     s.LeaveDays,
		OffDays:       s.OffDays,
		DeductionDays: s.DeductionDays,
		TotalOTHours:  s.TotalOTHours,
		OTEarnings:    s.OTEarnings,
		Deductions:    s.Deductions,
		NetSalary:     s.NetSalary,
		DailyRate:     s.DailyRate,
		OTRateApplied: s.OTRateApplied,
	}
}

// RegisterEntryDTO is one day of the month register.
type RegisterEntryDTO struct {
	Date     string     `json:"date"`
	Status   string     `json:"status"`
	Inferred bool       `json:"inferred"`
	Record   *RecordDTO `json:"record,omitempty"`
}

// LeaveUsageDTO reports one paid-leave type against its yearly quota.
type LeaveUsageDTO struct {
	Status    string `json:"status"`
	Quota     int    `json:"quota"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
