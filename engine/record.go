package engine

// =============================================================================
// RECORD DERIVATION - Punches to derived hours
// =============================================================================

// DeriveHours fills TotalHours and OTHours on a record from its punch times.
//
// Only worked statuses (Duty, HalfDay) carry punches; for every other status,
// or when either punch is missing, both derived fields are cleared. The
// overtime threshold is the employee's DailyWorkHours and the employee's
// break deduction applies, so a record's derived fields depend only on the
// record and the employee configuration.
func DeriveHours(rec *AttendanceRecord, employee Employee) error {
	if !rec.Status.Valid() {
		return &UnknownStatusError{Status: string(rec.Status)}
	}

	if !rec.Status.Worked() || rec.CheckIn == "" || rec.CheckOut == "" {
		rec.TotalHours = nil
		rec.OTHours = nil
		return nil
	}

	total, err := ComputeDuration(rec.CheckIn, rec.CheckOut)
	if err != nil {
		return err
	}
	ot := ComputeOvertime(total, employee.DailyWorkHours, employee.BreakDeductionHours)

	rec.TotalHours = &total
	rec.OTHours = &ot
	return nil
}
