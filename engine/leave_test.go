package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// LEAVE USAGE TESTS
// =============================================================================

func TestComputeLeaveUsage_CountsAgainstQuotas(t *testing.T) {
	emp := standardEmployee()
	emp.Quotas = engine.LeaveQuotas{SickLeave: 6, PaidLeave: 12, CasualLeave: 6}

	records := []engine.AttendanceRecord{
		record(2, engine.StatusSickLeave),
		record(3, engine.StatusSickLeave),
		record(4, engine.StatusPaidLeave),
		record(5, engine.StatusDuty), // not leave, ignored
	}

	usage, err := engine.ComputeLeaveUsage(records, emp)
	require.NoError(t, err)
	require.Len(t, usage, 3)

	byStatus := map[engine.Status]engine.LeaveUsage{}
	for _, u := range usage {
		byStatus[u.Status] = u
	}

	assert.Equal(t, 2, byStatus[engine.StatusSickLeave].Used)
	assert.Equal(t, 4, byStatus[engine.StatusSickLeave].Remaining)
	assert.Equal(t, 1, byStatus[engine.StatusPaidLeave].Used)
	assert.Equal(t, 11, byStatus[engine.StatusPaidLeave].Remaining)
	assert.Equal(t, 0, byStatus[engine.StatusCasualLeave].Used)
	assert.Equal(t, 6, byStatus[engine.StatusCasualLeave].Remaining)
}

func TestComputeLeaveUsage_OverQuota_GoesNegative(t *testing.T) {
	// The engine reports overdraw; enforcement is a caller concern.
	emp := standardEmployee()
	emp.Quotas = engine.LeaveQuotas{SickLeave: 1}

	records := []engine.AttendanceRecord{
		record(2, engine.StatusSickLeave),
		record(3, engine.StatusSickLeave),
	}

	usage, err := engine.ComputeLeaveUsage(records, emp)
	require.NoError(t, err)
	assert.Equal(t, -1, usage[0].Remaining)
}

func TestComputeLeaveUsage_UnknownStatus_Rejected(t *testing.T) {
	_, err := engine.ComputeLeaveUsage(
		[]engine.AttendanceRecord{record(2, engine.Status("sabbatical"))},
		standardEmployee(),
	)
	assert.ErrorIs(t, err, engine.ErrUnknownStatus)
}
