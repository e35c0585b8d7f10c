// Package memory provides an in-memory Store implementation for testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/store"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	employees map[string]engine.Employee
	holidays  map[string]engine.Holiday // by ID
	records   map[recordKey]engine.AttendanceRecord
}

type recordKey struct {
	EmployeeID string
	Date       string
}

var _ store.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		employees: make(map[string]engine.Employee),
		holidays:  make(map[string]engine.Holiday),
		records:   make(map[recordKey]engine.AttendanceRecord),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (m *Memory) SaveEmployee(_ context.Context, emp engine.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = emp
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, id string) (engine.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	emp, ok := m.employees[id]
	if !ok {
		return engine.Employee{}, store.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]engine.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	employees := make([]engine.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		employees = append(employees, emp)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func (m *Memory) DeleteEmployee(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[id]; !ok {
		return store.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (m *Memory) SaveHoliday(_ context.Context, h engine.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.holidays {
		if existing.Date.Equal(h.Date) && existing.ID != h.ID {
			return store.ErrDuplicateHoliday
		}
	}
	m.holidays[h.ID] = h
	return nil
}

func (m *Memory) ListHolidays(_ context.Context, year int) ([]engine.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var holidays []engine.Holiday
	for _, h := range m.holidays {
		if h.Date.Year() == year {
			holidays = append(holidays, h)
		}
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })
	return holidays, nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.holidays[id]; !ok {
		return store.ErrHolidayNotFound
	}
	delete(m.holidays, id)
	return nil
}

// =============================================================================
// ATTENDANCE RECORDS
// =============================================================================

func (m *Memory) UpsertRecord(_ context.Context, rec engine.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Last writer wins on the employee-day key.
	m.records[recordKey{EmployeeID: rec.EmployeeID, Date: rec.Date.String()}] = rec
	return nil
}

func (m *Memory) GetRecord(_ context.Context, employeeID string, date engine.Date) (engine.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[recordKey{EmployeeID: employeeID, Date: date.String()}]
	if !ok {
		return engine.AttendanceRecord{}, store.ErrRecordNotFound
	}
	return rec, nil
}

func (m *Memory) ListRecords(_ context.Context, employeeID string, period engine.Period) ([]engine.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []engine.AttendanceRecord
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID && period.Contains(rec.Date) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

func (m *Memory) DeleteRecord(_ context.Context, employeeID string, date engine.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := recordKey{EmployeeID: employeeID, Date: date.String()}
	if _, ok := m.records[key]; !ok {
		return store.ErrRecordNotFound
	}
	delete(m.records, key)
	return nil
}
