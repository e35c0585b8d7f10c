package engine

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK ARITHMETIC - Elapsed hours between two clock-of-day values
// =============================================================================

const minutesPerDay = 24 * 60

// ParseClock converts a 24-hour HH:MM value to minutes since midnight.
// Returns a MalformedTimeError for anything that is not a valid clock value.
func ParseClock(value string) (int, error) {
	hh, mm, ok := strings.Cut(value, ":")
	if !ok {
		return 0, &MalformedTimeError{Value: value}
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, &MalformedTimeError{Value: value}
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, &MalformedTimeError{Value: value}
	}

	return hours*60 + minutes, nil
}

// ComputeDuration returns the elapsed hours between two clock-of-day values,
// rounded to 2 decimal places.
//
// A check-out at or before the check-in is treated as an overnight shift:
// 24 hours are added before subtracting, so ("22:00", "06:00") yields 8.
// This models night shifts rather than signaling an error.
func ComputeDuration(checkIn, checkOut string) (decimal.Decimal, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return decimal.Zero, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return decimal.Zero, err
	}

	// Overnight wrap: identical punches count as a full 24h shift, matching
	// the "checkOut <= checkIn" rule.
	if out <= in {
		out += minutesPerDay
	}

	elapsed := decimal.NewFromInt(int64(out - in))
	return elapsed.Div(decimal.NewFromInt(60)).Round(2), nil
}
