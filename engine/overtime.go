package engine

import "github.com/shopspring/decimal"

// =============================================================================
// OVERTIME - Billable overtime hours from worked hours
// =============================================================================

// ComputeOvertime converts worked hours into billable overtime hours:
//
//	max(0, workedHours - breakDeduction - dailyThreshold)
//
// rounded to 2 decimal places.
//
// dailyThreshold is typically the employee's DailyWorkHours, but callers may
// pass a fixed 8-hour threshold instead; both conventions exist in the field
// so the threshold is a parameter, never a constant.
//
// breakDeduction subtracts an unpaid break from the worked hours before the
// threshold is applied. Pass decimal.Zero to disable. Only records with a
// worked status (Duty, HalfDay) should ever reach this function.
func ComputeOvertime(workedHours, dailyThreshold, breakDeduction decimal.Decimal) decimal.Decimal {
	ot := workedHours.Sub(breakDeduction).Sub(dailyThreshold)
	if ot.IsNegative() {
		return decimal.Zero
	}
	return ot.Round(2)
}
