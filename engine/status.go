package engine

// =============================================================================
// STATUS RESOLVER - Default status for days without explicit records
// =============================================================================

// ResolveDefaultStatus returns the status that applies to a date when no
// explicit record exists for it.
//
// Precedence, highest first:
//  1. The date appears in the holiday calendar -> StatusHoliday
//  2. The date's weekday is one of the employee's weekly offs -> StatusWeeklyOff
//  3. Neither -> ok is false; the caller decides how to treat the unmarked day
//
// Holiday wins over weekly off even when both apply to the same date. This is
// a deliberate tie-break: the holiday entry names the day and should show as
// such on registers and reports.
func ResolveDefaultStatus(date Date, employee Employee, holidays []Holiday) (Status, bool) {
	for _, h := range holidays {
		if h.Date.Equal(date) {
			return StatusHoliday, true
		}
	}
	if employee.HasWeeklyOff(date.Weekday()) {
		return StatusWeeklyOff, true
	}
	return StatusUnmarked, false
}
