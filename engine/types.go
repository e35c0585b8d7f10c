/*
Package engine implements the attendance-to-payroll computation core.

PURPOSE:
  This package contains the pure functions that turn raw daily punch events
  and configuration (employee pay terms, weekly-off pattern, holiday calendar)
  into derived per-day attendance facts and a monthly payroll summary.

KEY CONCEPTS IN THIS FILE (types.go):
  - Status: The closed attendance status enumeration
  - Employee: Pay terms and weekly-off configuration
  - Holiday: A calendar-date entry in the company holiday list
  - AttendanceRecord: One employee-day of attendance, keyed (EmployeeID, Date)
  - PayrollSummary: The per-period aggregate produced by AggregatePayroll

DESIGN PRINCIPLES:
  1. Purity: Every function is a side-effect-free transform over immutable
     inputs. Repeated invocation with identical inputs yields identical output.
  2. Precision: Uses decimal.Decimal for hours and money to avoid
     floating-point errors in financial results.
  3. Explicit failure: Malformed times, unknown statuses, and invalid
     configuration surface as errors. The engine never substitutes defaults
     that would silently change financial results.

USAGE:
  hours, err := engine.ComputeDuration("09:00", "17:30")   // 8.5
  ot := engine.ComputeOvertime(hours, emp.DailyWorkHours, decimal.Zero)
  summary, err := engine.AggregatePayroll(records, emp)

SEE ALSO:
  - clock.go:    Clock-of-day duration arithmetic
  - status.go:   Default status resolution (holiday vs weekly-off)
  - overtime.go: Overtime hours from worked hours
  - payroll.go:  Per-period aggregation into PayrollSummary
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ATTENDANCE STATUS - Closed enumeration
// =============================================================================

// Status classifies one employee-day. The set is closed: aggregation rejects
// any value outside it rather than silently skipping the record.
type Status string

const (
	StatusDuty        Status = "duty"
	StatusSickLeave   Status = "sick_leave"
	StatusPaidLeave   Status = "paid_leave"
	StatusCasualLeave Status = "casual_leave"
	StatusUnpaid      Status = "unpaid"
	StatusHalfDay     Status = "half_day"
	StatusWeeklyOff   Status = "weekly_off"
	StatusHoliday     Status = "holiday"
	StatusAbsent      Status = "absent"

	// StatusUnmarked is a register-view placeholder for days with no record
	// and no resolvable default. It is not part of the closed set and is
	// rejected by AggregatePayroll and the stores.
	StatusUnmarked Status = ""
)

// allStatuses is the closed set accepted by aggregation and persistence.
var allStatuses = map[Status]bool{
	StatusDuty:        true,
	StatusSickLeave:   true,
	StatusPaidLeave:   true,
	StatusCasualLeave: true,
	StatusUnpaid:      true,
	StatusHalfDay:     true,
	StatusWeeklyOff:   true,
	StatusHoliday:     true,
	StatusAbsent:      true,
}

// Valid reports whether s is in the closed status set.
func (s Status) Valid() bool { return allStatuses[s] }

// Worked reports whether the status represents a day with punch times
// (check-in/check-out are only meaningful for these).
func (s Status) Worked() bool { return s == StatusDuty || s == StatusHalfDay }

// PaidLeave reports whether the status is a quota-backed paid leave type.
func (s Status) PaidLeave() bool {
	return s == StatusSickLeave || s == StatusPaidLeave || s == StatusCasualLeave
}

// ParseStatus validates a raw status value against the closed set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return StatusUnmarked, &UnknownStatusError{Status: raw}
	}
	return s, nil
}

// =============================================================================
// EMPLOYEE - Pay terms and attendance configuration
// =============================================================================

// LeaveQuotas holds yearly paid-leave allowances in days.
type LeaveQuotas struct {
	SickLeave   int
	PaidLeave   int
	CasualLeave int
}

// Days returns the quota for a paid-leave status, zero otherwise.
func (q LeaveQuotas) Days(s Status) int {
	switch s {
	case StatusSickLeave:
		return q.SickLeave
	case StatusPaidLeave:
		return q.PaidLeave
	case StatusCasualLeave:
		return q.CasualLeave
	default:
		return 0
	}
}

// Employee is the configuration an administrator owns: identity, pay terms,
// the weekly-off pattern, and paid-leave quotas.
type Employee struct {
	ID   string
	Name string

	// MonthlySalary is the gross salary per billing month. Must be >= 0.
	MonthlySalary decimal.Decimal

	// OTRate is the overtime pay rate per hour. Zero means "derive from the
	// hourly base" (daily rate / 8).
	OTRate decimal.Decimal

	// DailyWorkHours is the reference shift length used as the default
	// overtime threshold.
	DailyWorkHours decimal.Decimal

	// WorkingDaysPerMonth is the cycle length used as the denominator when
	// deriving the daily rate, typically 26-31. Must be > 0.
	WorkingDaysPerMonth int

	// WeeklyOffs is the set of weekdays that default to WeeklyOff when no
	// explicit record exists.
	WeeklyOffs []time.Weekday

	// BreakDeductionHours is subtracted from worked hours before overtime is
	// computed. Zero disables the deduction.
	BreakDeductionHours decimal.Decimal

	Quotas LeaveQuotas
}

// HasWeeklyOff reports whether the weekday is configured as a weekly off.
func (e Employee) HasWeeklyOff(wd time.Weekday) bool {
	for _, off := range e.WeeklyOffs {
		if off == wd {
			return true
		}
	}
	return false
}

// Validate checks the configuration invariants that derived pay depends on.
func (e Employee) Validate() error {
	if e.WorkingDaysPerMonth <= 0 {
		return &InvalidConfigurationError{
			Field:  "working_days_per_month",
			Reason: "must be greater than zero",
		}
	}
	if e.MonthlySalary.IsNegative() {
		return &InvalidConfigurationError{Field: "monthly_salary", Reason: "must not be negative"}
	}
	if e.OTRate.IsNegative() {
		return &InvalidConfigurationError{Field: "ot_rate", Reason: "must not be negative"}
	}
	if e.DailyWorkHours.IsNegative() {
		return &InvalidConfigurationError{Field: "daily_work_hours", Reason: "must not be negative"}
	}
	if e.BreakDeductionHours.IsNegative() {
		return &InvalidConfigurationError{Field: "break_deduction_hours", Reason: "must not be negative"}
	}
	for _, off := range e.WeeklyOffs {
		if off < time.Sunday || off > time.Saturday {
			return &InvalidConfigurationError{
				Field:  "weekly_offs",
				Reason: "weekday must be in Sunday..Saturday",
			}
		}
	}
	return nil
}

// =============================================================================
// HOLIDAY - Company holiday calendar entry
// =============================================================================

// Holiday is a company holiday. At most one holiday exists per date.
type Holiday struct {
	ID   string
	Date Date
	Name string
}

// =============================================================================
// ATTENDANCE RECORD - One employee-day
// =============================================================================

// AttendanceRecord is one day of attendance for one employee. Records are
// unique per (EmployeeID, Date); an existing record overrides any status the
// resolver would otherwise infer for that date.
type AttendanceRecord struct {
	EmployeeID string
	Date       Date
	Status     Status

	// CheckIn/CheckOut are 24-hour HH:MM clock values, present only for
	// worked statuses (Duty, HalfDay).
	CheckIn  string
	CheckOut string

	// TotalHours/OTHours are derived from the punches and present only when
	// both punches exist.
	TotalHours *decimal.Decimal
	OTHours    *decimal.Decimal

	Notes string
}

// =============================================================================
// PAYROLL SUMMARY - Per-period aggregate (derived, never persisted)
// =============================================================================

// PayrollSummary is the monthly aggregate computed from a record snapshot.
// It is a value object: computed on demand, never mutated in place.
type PayrollSummary struct {
	EmployeeID string
	Period     Period

	PresentDays int
	HalfDays    int
	AbsentDays  int
	LeaveDays   int // paid leave (SL/PL/CL)
	OffDays     int // weekly offs + holidays recorded explicitly

	// DeductionDays counts unpaid time: 1.0 per absent/unpaid day, 0.5 per
	// half day.
	DeductionDays decimal.Decimal

	TotalOTHours decimal.Decimal
	OTEarnings   decimal.Decimal
	Deductions   decimal.Decimal

	// NetSalary is rounded to the nearest whole currency unit and floored
	// at zero.
	NetSalary decimal.Decimal

	// DailyRate and OTRateApplied are the rates used, rounded for display.
	DailyRate     decimal.Decimal
	OTRateApplied decimal.Decimal
}
