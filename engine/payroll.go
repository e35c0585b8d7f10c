/*
payroll.go - Per-period payroll aggregation

PURPOSE:
  Folds one employee's attendance records for one billing period into counts,
  deductions, overtime pay, and net salary. This is the financially sensitive
  path: every record must be classified, and every rounding step is fixed.

CLASSIFICATION (by record status only):
  Duty       -> present day; OT hours accumulate
  HalfDay    -> half day; 0.5 deduction days; OT hours accumulate
  Absent     -> absent day; 1.0 deduction days
  Unpaid     -> absent day; 1.0 deduction days
  SL/PL/CL   -> paid leave; no deduction, not counted present
  WeeklyOff  -> paid off day; no deduction
  Holiday    -> paid off day; no deduction
  anything else -> UnknownStatusError (never silently dropped)

DERIVED PAY:
  rawDailyRate = monthlySalary / workingDaysPerMonth   (unrounded)
  hourlyBase   = round2(rawDailyRate / 8)
  effectiveOT  = otRate if otRate > 0 else hourlyBase
  deductions   = round2(deductionDays * rawDailyRate)
  otEarnings   = round2(totalOTHours * effectiveOT)
  netSalary    = max(0, round0(monthlySalary - deductions + otEarnings))

  Deductions and OT earnings are computed from the unrounded daily rate and
  rounded once; the summary's DailyRate field is the 2-decimal display value.

PROPERTIES:
  The fold is commutative and associative over the record set: input order
  never changes the result, and recomputation from the same snapshot is
  bit-identical. No state is carried between calls.
*/
package engine

import "github.com/shopspring/decimal"

var (
	half         = decimal.NewFromFloat(0.5)
	one          = decimal.NewFromInt(1)
	hoursPerBase = decimal.NewFromInt(8)
)

// AggregatePayroll reduces the attendance records of one employee over one
// billing period into a PayrollSummary.
//
// The caller restricts records to the period (and to the employee) before
// calling; the engine classifies purely on record status and performs no
// filtering of its own. Days with no record at all simply do not contribute -
// callers that treat unmarked days as absent materialize absent records first.
func AggregatePayroll(records []AttendanceRecord, employee Employee) (PayrollSummary, error) {
	if err := employee.Validate(); err != nil {
		return PayrollSummary{}, err
	}

	summary := PayrollSummary{
		EmployeeID:    employee.ID,
		DeductionDays: decimal.Zero,
		TotalOTHours:  decimal.Zero,
	}

	for _, rec := range records {
		switch rec.Status {
		case StatusDuty:
			summary.PresentDays++
			if rec.OTHours != nil {
				summary.TotalOTHours = summary.TotalOTHours.Add(*rec.OTHours)
			}
		case StatusHalfDay:
			summary.HalfDays++
			summary.DeductionDays = summary.DeductionDays.Add(half)
			if rec.OTHours != nil {
				summary.TotalOTHours = summary.TotalOTHours.Add(*rec.OTHours)
			}
		case StatusAbsent, StatusUnpaid:
			summary.AbsentDays++
			summary.DeductionDays = summary.DeductionDays.Add(one)
		case StatusSickLeave, StatusPaidLeave, StatusCasualLeave:
			summary.LeaveDays++
		case StatusWeeklyOff, StatusHoliday:
			summary.OffDays++
		default:
			return PayrollSummary{}, &UnknownStatusError{Status: string(rec.Status)}
		}
	}

	// Derived pay. The raw daily rate stays unrounded until each money value
	// is combined, then each value is rounded exactly once.
	rawDailyRate := employee.MonthlySalary.Div(decimal.NewFromInt(int64(employee.WorkingDaysPerMonth)))
	hourlyBase := rawDailyRate.Div(hoursPerBase).Round(2)

	effectiveOTRate := employee.OTRate
	if !effectiveOTRate.IsPositive() {
		effectiveOTRate = hourlyBase
	}

	summary.TotalOTHours = summary.TotalOTHours.Round(2)
	summary.Deductions = summary.DeductionDays.Mul(rawDailyRate).Round(2)
	summary.OTEarnings = summary.TotalOTHours.Mul(effectiveOTRate).Round(2)

	net := employee.MonthlySalary.Sub(summary.Deductions).Add(summary.OTEarnings).Round(0)
	if net.IsNegative() {
		net = decimal.Zero
	}
	summary.NetSalary = net

	summary.DailyRate = rawDailyRate.Round(2)
	summary.OTRateApplied = effectiveOTRate.Round(2)

	return summary, nil
}
