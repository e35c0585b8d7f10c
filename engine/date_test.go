package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/engine"
)

func TestMonthOf_Boundaries(t *testing.T) {
	june := engine.MonthOf(2025, time.June)
	assert.Equal(t, "2025-06-01", june.Start.String())
	assert.Equal(t, "2025-06-30", june.End.String())
	assert.Len(t, june.Days(), 30)

	// Leap February
	feb := engine.MonthOf(2024, time.February)
	assert.Equal(t, "2024-02-29", feb.End.String())
	assert.Len(t, feb.Days(), 29)

	// Year rollover
	dec := engine.MonthOf(2025, time.December)
	assert.Equal(t, "2025-12-31", dec.End.String())
}

func TestPeriod_Contains(t *testing.T) {
	p := engine.MonthOf(2025, time.June)

	assert.True(t, p.Contains(engine.NewDate(2025, time.June, 1)), "start is inclusive")
	assert.True(t, p.Contains(engine.NewDate(2025, time.June, 30)), "end is inclusive")
	assert.False(t, p.Contains(engine.NewDate(2025, time.May, 31)))
	assert.False(t, p.Contains(engine.NewDate(2025, time.July, 1)))
}

func TestParseMonth(t *testing.T) {
	p, err := engine.ParseMonth("2025-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", p.Start.String())

	_, err = engine.ParseMonth("June 2025")
	assert.Error(t, err)

	_, err = engine.ParseMonth("")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := engine.ParseDate("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = engine.ParseDate("02/06/2025")
	assert.Error(t, err)
}
