/*
Package sqlite provides the SQLite-backed implementation of the store
interfaces.

PURPOSE:
  Persists employees, the holiday calendar, and attendance records. In
  production the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  employees:          Pay terms, weekly-off pattern, leave quotas
  holidays:           Holiday calendar (UNIQUE on date)
  attendance_records: One row per employee-day (PRIMARY KEY employee_id, date)

LAST-WRITER-WINS:
  Attendance writes use INSERT .. ON CONFLICT DO UPDATE on the employee-day
  key. Concurrent editors resolve by last write, matching the document-merge
  semantics of the source data store. Readers always see a complete row,
  never a partial merge.

DECIMAL STORAGE:
  Money and hour values are stored as TEXT and parsed back through
  decimal.NewFromString, so no precision is lost to floating point.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery is cheap.

USAGE:
  st, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - store/store.go: Interface definitions
  - store/memory:   In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		monthly_salary TEXT NOT NULL,
		ot_rate TEXT NOT NULL,
		daily_work_hours TEXT NOT NULL,
		working_days_per_month INTEGER NOT NULL,
		weekly_offs_json TEXT NOT NULL,
		break_deduction_hours TEXT NOT NULL,
		quotas_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance_records (
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL,
		check_in TEXT,
		check_out TEXT,
		total_hours TEXT,
		ot_hours TEXT,
		notes TEXT,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_records_employee_date
		ON attendance_records(employee_id, date);
	CREATE INDEX IF NOT EXISTS idx_holidays_date
		ON holidays(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type quotasJSON struct {
	SickLeave   int `json:"sick_leave"`
	PaidLeave   int `json:"paid_leave"`
	CasualLeave int `json:"casual_leave"`
}

func (s *Store) SaveEmployee(ctx context.Context, emp engine.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offs := make([]int, len(emp.WeeklyOffs))
	for i, wd := range emp.WeeklyOffs {
		offs[i] = int(wd)
	}
	offsJSON, err := json.Marshal(offs)
	if err != nil {
		return err
	}
	quotas, err := json.Marshal(quotasJSON{
		SickLeave:   emp.Quotas.SickLeave,
		PaidLeave:   emp.Quotas.PaidLeave,
		CasualLeave: emp.Quotas.CasualLeave,
	})
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, monthly_salary, ot_rate, daily_work_hours,
			working_days_per_month, weekly_offs_json, break_deduction_hours, quotas_json, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			monthly_salary = excluded.monthly_salary,
			ot_rate = excluded.ot_rate,
			daily_work_hours = excluded.daily_work_hours,
			working_days_per_month = excluded.working_days_per_month,
			weekly_offs_json = excluded.weekly_offs_json,
			break_deduction_hours = excluded.break_deduction_hours,
			quotas_json = excluded.quotas_json,
			updated_at = excluded.updated_at`,
		emp.ID, emp.Name,
		emp.MonthlySalary.String(), emp.OTRate.String(), emp.DailyWorkHours.String(),
		emp.WorkingDaysPerMonth, string(offsJSON), emp.BreakDeductionHours.String(),
		string(quotas), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, monthly_salary, ot_rate, daily_work_hours,
			working_days_per_month, weekly_offs_json, break_deduction_hours, quotas_json
		FROM employees WHERE id = ?`, id)

	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Employee{}, store.ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) ListEmployees(ctx context.Context) ([]engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, monthly_salary, ot_rate, daily_work_hours,
			working_days_per_month, weekly_offs_json, break_deduction_hours, quotas_json
		FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []engine.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrEmployeeNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (engine.Employee, error) {
	var (
		emp                            engine.Employee
		salary, otRate, workHours, brk string
		offsJSON, quotasRaw            string
	)
	err := row.Scan(&emp.ID, &emp.Name, &salary, &otRate, &workHours,
		&emp.WorkingDaysPerMonth, &offsJSON, &brk, &quotasRaw)
	if err != nil {
		return engine.Employee{}, err
	}

	if emp.MonthlySalary, err = decimal.NewFromString(salary); err != nil {
		return engine.Employee{}, fmt.Errorf("corrupt monthly_salary: %w", err)
	}
	if emp.OTRate, err = decimal.NewFromString(otRate); err != nil {
		return engine.Employee{}, fmt.Errorf("corrupt ot_rate: %w", err)
	}
	if emp.DailyWorkHours, err = decimal.NewFromString(workHours); err != nil {
		return engine.Employee{}, fmt.Errorf("corrupt daily_work_hours: %w", err)
	}
	if emp.BreakDeductionHours, err = decimal.NewFromString(brk); err != nil {
		return engine.Employee{}, fmt.Errorf("corrupt break_deduction_hours: %w", err)
	}

	var offs []int
	if err := json.Unmarshal([]byte(offsJSON), &offs); err != nil {
		return engine.Employee{}, fmt.Errorf("corrupt weekly_offs_json: %w", err)
	}
	for _, o := range offs {
		emp.WeeklyOffs = append(emp.WeeklyOffs, time.Weekday(o))
	}

	var quotas quotasJSON
	if err := json.Unmarshal([]byte(quotasRaw), &quotas); err != nil {
		return engine.Employee{}, fmt.Errorf("corrupt quotas_json: %w", err)
	}
	emp.Quotas = engine.LeaveQuotas{
		SickLeave:   quotas.SickLeave,
		PaidLeave:   quotas.PaidLeave,
		CasualLeave: quotas.CasualLeave,
	}
	return emp, nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) SaveHoliday(ctx context.Context, h engine.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO holidays (id, date, name) VALUES (?, ?, ?)`,
		h.ID, h.Date.String(), h.Name)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return store.ErrDuplicateHoliday
		}
		return err
	}
	return nil
}

func (s *Store) ListHolidays(ctx context.Context, year int) ([]engine.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, name FROM holidays WHERE date LIKE ? ORDER BY date`,
		fmt.Sprintf("%04d-%%", year))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []engine.Holiday
	for rows.Next() {
		var (
			h       engine.Holiday
			rawDate string
		)
		if err := rows.Scan(&h.ID, &rawDate, &h.Name); err != nil {
			return nil, err
		}
		if h.Date, err = engine.ParseDate(rawDate); err != nil {
			return nil, fmt.Errorf("corrupt holiday date: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrHolidayNotFound
	}
	return nil
}

// =============================================================================
// ATTENDANCE RECORDS
// =============================================================================

func (s *Store) UpsertRecord(ctx context.Context, rec engine.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_records (employee_id, date, status, check_in, check_out,
			total_hours, ot_hours, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			status = excluded.status,
			check_in = excluded.check_in,
			check_out = excluded.check_out,
			total_hours = excluded.total_hours,
			ot_hours = excluded.ot_hours,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		rec.EmployeeID, rec.Date.String(), string(rec.Status),
		nullString(rec.CheckIn), nullString(rec.CheckOut),
		nullDecimal(rec.TotalHours), nullDecimal(rec.OTHours),
		nullString(rec.Notes), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetRecord(ctx context.Context, employeeID string, date engine.Date) (engine.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT employee_id, date, status, check_in, check_out, total_hours, ot_hours, notes
		FROM attendance_records WHERE employee_id = ? AND date = ?`,
		employeeID, date.String())

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.AttendanceRecord{}, store.ErrRecordNotFound
	}
	return rec, err
}

func (s *Store) ListRecords(ctx context.Context, employeeID string, period engine.Period) ([]engine.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, date, status, check_in, check_out, total_hours, ot_hours, notes
		FROM attendance_records
		WHERE employee_id = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		employeeID, period.Start.String(), period.End.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) DeleteRecord(ctx context.Context, employeeID string, date engine.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM attendance_records WHERE employee_id = ? AND date = ?`,
		employeeID, date.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func scanRecord(row rowScanner) (engine.AttendanceRecord, error) {
	var (
		rec                      engine.AttendanceRecord
		rawDate, status          string
		checkIn, checkOut, notes sql.NullString
		totalHours, otHours      sql.NullString
	)
	err := row.Scan(&rec.EmployeeID, &rawDate, &status,
		&checkIn, &checkOut, &totalHours, &otHours, &notes)
	if err != nil {
		return engine.AttendanceRecord{}, err
	}

	if rec.Date, err = engine.ParseDate(rawDate); err != nil {
		return engine.AttendanceRecord{}, fmt.Errorf("corrupt record date: %w", err)
	}
	rec.Status = engine.Status(status)
	rec.CheckIn = checkIn.String
	rec.CheckOut = checkOut.String
	rec.Notes = notes.String

	if totalHours.Valid {
		d, err := decimal.NewFromString(strings.TrimSpace(totalHours.String))
		if err != nil {
			return engine.AttendanceRecord{}, fmt.Errorf("corrupt total_hours: %w", err)
		}
		rec.TotalHours = &d
	}
	if otHours.Valid {
		d, err := decimal.NewFromString(strings.TrimSpace(otHours.String))
		if err != nil {
			return engine.AttendanceRecord{}, fmt.Errorf("corrupt ot_hours: %w", err)
		}
		rec.OTHours = &d
	}
	return rec, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}
