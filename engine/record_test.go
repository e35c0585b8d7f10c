package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// RECORD DERIVATION TESTS
// =============================================================================

func TestDeriveHours_DutyWithPunches(t *testing.T) {
	emp := standardEmployee()
	rec := record(2, engine.StatusDuty)
	rec.CheckIn = "09:00"
	rec.CheckOut = "18:30"

	require.NoError(t, engine.DeriveHours(&rec, emp))
	require.NotNil(t, rec.TotalHours)
	require.NotNil(t, rec.OTHours)
	assert.True(t, rec.TotalHours.Equal(dec("9.5")), "total: %v", rec.TotalHours)
	assert.True(t, rec.OTHours.Equal(dec("1.5")), "ot: %v", rec.OTHours)
}

func TestDeriveHours_BreakDeductionApplies(t *testing.T) {
	emp := standardEmployee()
	emp.BreakDeductionHours = dec("0.5")
	rec := record(2, engine.StatusDuty)
	rec.CheckIn = "09:00"
	rec.CheckOut = "18:30"

	require.NoError(t, engine.DeriveHours(&rec, emp))
	assert.True(t, rec.OTHours.Equal(dec("1")), "ot: %v", rec.OTHours)
}

func TestDeriveHours_NonWorkedStatus_ClearsDerivedFields(t *testing.T) {
	emp := standardEmployee()
	rec := record(2, engine.StatusSickLeave)
	stale := dec("8")
	rec.TotalHours = &stale
	rec.OTHours = &stale

	require.NoError(t, engine.DeriveHours(&rec, emp))
	assert.Nil(t, rec.TotalHours)
	assert.Nil(t, rec.OTHours)
}

func TestDeriveHours_MissingPunch_NoDerivedFields(t *testing.T) {
	emp := standardEmployee()
	rec := record(2, engine.StatusDuty)
	rec.CheckIn = "09:00"

	require.NoError(t, engine.DeriveHours(&rec, emp))
	assert.Nil(t, rec.TotalHours)
	assert.Nil(t, rec.OTHours)
}

func TestDeriveHours_MalformedPunch_Rejected(t *testing.T) {
	emp := standardEmployee()
	rec := record(2, engine.StatusDuty)
	rec.CheckIn = "9am"
	rec.CheckOut = "17:00"

	assert.ErrorIs(t, engine.DeriveHours(&rec, emp), engine.ErrMalformedTime)
}
