package engine

// =============================================================================
// MONTH REGISTER - Per-day view of a billing period
// =============================================================================

// RegisterEntry is one day in the month register: either an explicit record
// or a resolver default. Inferred is true when no record exists and the
// status came from the holiday calendar or weekly-off pattern; a day with
// neither is StatusUnmarked.
type RegisterEntry struct {
	Date     Date
	Status   Status
	Inferred bool

	// Record is the explicit record for the day, nil when inferred/unmarked.
	Record *AttendanceRecord
}

// BuildRegister produces the day-by-day attendance register for one employee
// over one period. An explicit record always overrides the resolver default.
//
// Records outside the period are ignored; duplicate records for a date cannot
// occur (records are unique per employee-day at the store).
func BuildRegister(period Period, employee Employee, holidays []Holiday, records []AttendanceRecord) ([]RegisterEntry, error) {
	if err := employee.Validate(); err != nil {
		return nil, err
	}

	byDate := make(map[string]*AttendanceRecord, len(records))
	for i := range records {
		rec := &records[i]
		if !rec.Status.Valid() {
			return nil, &UnknownStatusError{Status: string(rec.Status)}
		}
		if period.Contains(rec.Date) {
			byDate[rec.Date.String()] = rec
		}
	}

	days := period.Days()
	entries := make([]RegisterEntry, 0, len(days))
	for _, day := range days {
		if rec, ok := byDate[day.String()]; ok {
			entries = append(entries, RegisterEntry{Date: day, Status: rec.Status, Record: rec})
			continue
		}
		status, ok := ResolveDefaultStatus(day, employee, holidays)
		entries = append(entries, RegisterEntry{Date: day, Status: status, Inferred: ok})
	}
	return entries, nil
}
