/*
Package store defines the persistence interfaces for the payroll engine's
collaborators.

PURPOSE:
  The engine itself is a stateless transform; these interfaces describe the
  record-store collaborator that supplies it with snapshots of employees,
  holidays, and attendance records. Different implementations can use SQLite
  or in-memory storage.

SNAPSHOT CONTRACT:
  Reads return immutable snapshots. The engine never assumes it is the only
  reader or writer: record writes are last-writer-wins on (employee_id, date),
  mirroring document-merge persistence, and every computation starts from a
  fresh read.

KEY INTERFACES:
  EmployeeStore: Employee configuration (admin-owned)
  HolidayStore:  Holiday calendar (admin-owned, one holiday per date)
  RecordStore:   Attendance records keyed by (employee_id, date)

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite
  - store/memory: In-memory for testing
*/
package store

import (
	"context"
	"errors"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrRecordNotFound is returned when no record exists for an employee-day.
	ErrRecordNotFound = errors.New("attendance record not found")

	// ErrHolidayNotFound is returned when a referenced holiday doesn't exist.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrDuplicateHoliday is returned when a second holiday is saved for a
	// date that already has one.
	ErrDuplicateHoliday = errors.New("holiday already exists for date")
)

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrHolidayNotFound)
}

// =============================================================================
// INTERFACES
// =============================================================================

// EmployeeStore persists employee configuration.
type EmployeeStore interface {
	// SaveEmployee inserts or replaces the employee by ID.
	SaveEmployee(ctx context.Context, emp engine.Employee) error

	GetEmployee(ctx context.Context, id string) (engine.Employee, error)
	ListEmployees(ctx context.Context) ([]engine.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// HolidayStore persists the holiday calendar. At most one holiday per date.
type HolidayStore interface {
	// SaveHoliday inserts a holiday. Returns ErrDuplicateHoliday if the date
	// is already taken.
	SaveHoliday(ctx context.Context, h engine.Holiday) error

	// ListHolidays returns the holidays of a calendar year, ordered by date.
	ListHolidays(ctx context.Context, year int) ([]engine.Holiday, error)

	DeleteHoliday(ctx context.Context, id string) error
}

// RecordStore persists attendance records, unique per (employee_id, date).
type RecordStore interface {
	// UpsertRecord writes the record, replacing any existing record for the
	// same employee-day. Last writer wins.
	UpsertRecord(ctx context.Context, rec engine.AttendanceRecord) error

	GetRecord(ctx context.Context, employeeID string, date engine.Date) (engine.AttendanceRecord, error)

	// ListRecords returns the employee's records within the period, ordered
	// by date. This is the snapshot handed to the engine.
	ListRecords(ctx context.Context, employeeID string, period engine.Period) ([]engine.AttendanceRecord, error)

	DeleteRecord(ctx context.Context, employeeID string, date engine.Date) error
}

// Store combines all persistence concerns.
type Store interface {
	EmployeeStore
	HolidayStore
	RecordStore
}
