/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  Callers match with errors.Is / errors.As; the structured types carry the
  offending value for user-facing messages.

ERROR CATEGORIES:
  1. MalformedTime         - unparseable HH:MM clock value
  2. UnknownStatus         - status outside the closed enumeration
  3. InvalidConfiguration  - employee pay terms that make derived pay undefined

All three are local validation failures surfaced synchronously. Nothing in
the engine is transient, so nothing is retried.
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMalformedTime is returned when a clock value does not parse as
	// 24-hour HH:MM. The engine never falls back to a zero duration.
	ErrMalformedTime = errors.New("malformed clock time")

	// ErrUnknownStatus is returned when a record carries a status outside
	// the closed enumeration. Aggregation never silently skips such records.
	ErrUnknownStatus = errors.New("unknown attendance status")

	// ErrInvalidConfiguration is returned when employee configuration would
	// make derived pay undefined (e.g. a zero working-day cycle).
	ErrInvalidConfiguration = errors.New("invalid employee configuration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MalformedTimeError reports the clock value that failed to parse.
type MalformedTimeError struct {
	Value string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed clock time %q: expected 24-hour HH:MM", e.Value)
}

func (e *MalformedTimeError) Unwrap() error { return ErrMalformedTime }

// UnknownStatusError reports a status value outside the closed set.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown attendance status %q", e.Status)
}

func (e *UnknownStatusError) Unwrap() error { return ErrUnknownStatus }

// InvalidConfigurationError reports which configuration field is unusable.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMalformedTime) ||
		errors.Is(err, ErrUnknownStatus) ||
		errors.Is(err, ErrInvalidConfiguration)
}
