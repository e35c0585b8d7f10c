package engine

// =============================================================================
// LEAVE USAGE - Paid-leave days taken against yearly quotas
// =============================================================================

// LeaveUsage reports one paid-leave type against its yearly quota. Remaining
// can go negative when usage exceeds the quota; the engine reports, it does
// not enforce.
type LeaveUsage struct {
	Status    Status
	Quota     int
	Used      int
	Remaining int
}

// ComputeLeaveUsage counts paid-leave days (SL/PL/CL) in the given records
// against the employee's yearly quotas. Callers pass the records for the
// quota year; the engine does no date filtering.
//
// Non-leave statuses are ignored here but must still be valid: an unknown
// status is an error, consistent with aggregation.
func ComputeLeaveUsage(records []AttendanceRecord, employee Employee) ([]LeaveUsage, error) {
	used := map[Status]int{}
	for _, rec := range records {
		if !rec.Status.Valid() {
			return nil, &UnknownStatusError{Status: string(rec.Status)}
		}
		if rec.Status.PaidLeave() {
			used[rec.Status]++
		}
	}

	types := []Status{StatusSickLeave, StatusPaidLeave, StatusCasualLeave}
	usage := make([]LeaveUsage, 0, len(types))
	for _, s := range types {
		quota := employee.Quotas.Days(s)
		usage = append(usage, LeaveUsage{
			Status:    s,
			Quota:     quota,
			Used:      used[s],
			Remaining: quota - used[s],
		})
	}
	return usage, nil
}
