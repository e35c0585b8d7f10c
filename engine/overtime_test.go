package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// OVERTIME TESTS
// =============================================================================

func TestComputeOvertime_AboveThreshold(t *testing.T) {
	ot := engine.ComputeOvertime(dec("9.5"), dec("8"), decimal.Zero)
	assert.True(t, ot.Equal(dec("1.5")), "expected 1.5, got %v", ot)
}

func TestComputeOvertime_BelowThreshold_Zero(t *testing.T) {
	ot := engine.ComputeOvertime(dec("7"), dec("8"), decimal.Zero)
	assert.True(t, ot.IsZero(), "expected 0, got %v", ot)
}

func TestComputeOvertime_ExactThreshold_Zero(t *testing.T) {
	ot := engine.ComputeOvertime(dec("8"), dec("8"), decimal.Zero)
	assert.True(t, ot.IsZero(), "expected 0, got %v", ot)
}

func TestComputeOvertime_BreakDeduction(t *testing.T) {
	// GIVEN: 9.5 worked hours, an 8h threshold, and a 0.5h unpaid break
	// WHEN: Computing overtime
	// THEN: The break comes off before the threshold applies

	ot := engine.ComputeOvertime(dec("9.5"), dec("8"), dec("0.5"))
	assert.True(t, ot.Equal(dec("1")), "expected 1, got %v", ot)
}

func TestComputeOvertime_BreakDeduction_NeverNegative(t *testing.T) {
	ot := engine.ComputeOvertime(dec("8"), dec("8"), dec("0.5"))
	assert.True(t, ot.IsZero(), "expected 0, got %v", ot)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
