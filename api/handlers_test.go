/*
handlers_test.go - HTTP tests for API handlers

Tests run against the full router with an in-memory SQLite store, so they
cover routing, JSON codecs, validation, and store wiring together.
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	router := api.NewRouter(api.NewHandler(st), []string{"http://localhost:5173"})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func saveTestEmployee(t *testing.T, srv *httptest.Server) {
	t.Helper()
	resp := doJSON(t, srv, http.MethodPost, "/api/employees", api.SaveEmployeeRequest{
		ID:                  "emp-1",
		Name:                "Asha",
		MonthlySalary:       decimal.NewFromInt(30000),
		DailyWorkHours:      decimal.NewFromInt(8),
		WorkingDaysPerMonth: 26,
		WeeklyOffs:          []int{0},
		Quotas:              api.QuotasDTO{SickLeave: 6, PaidLeave: 12, CasualLeave: 6},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestEmployees_RoundTrip(t *testing.T) {
	srv := newTestServer(t)
	saveTestEmployee(t, srv)

	resp := doJSON(t, srv, http.MethodGet, "/api/employees/emp-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[api.EmployeeDTO](t, resp)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, 26, got.WorkingDaysPerMonth)
	assert.Equal(t, []int{0}, got.WeeklyOffs)
	assert.True(t, got.MonthlySalary.Equal(decimal.NewFromInt(30000)))
}

func TestEmployees_ValidationFailure(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/employees", api.SaveEmployeeRequest{
		ID: "emp-1", // missing name, missing working days
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmployees_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/api/employees/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestHolidays_DuplicateDateRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/holidays", api.CreateHolidayRequest{
		Date: "2025-12-25", Name: "Christmas Day"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/holidays", api.CreateHolidayRequest{
		Date: "2025-12-25", Name: "Duplicate"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/holidays?year=2025", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	holidays := decode[[]api.HolidayDTO](t, resp)
	assert.Len(t, holidays, 1)
}

// =============================================================================
// ATTENDANCE RECORDS
// =============================================================================

func TestRecords_UpsertDerivesHours(t *testing.T) {
	// GIVEN: An employee with 8h standard days
	// WHEN: A duty record with punches 09:00 to 18:30 is posted
	// THEN: The server computes total 9.5h and overtime 1.5h

	srv := newTestServer(t)
	saveTestEmployee(t, srv)

	resp := doJSON(t, srv, http.MethodPost, "/api/employees/emp-1/records", api.UpsertRecordRequest{
		Date:     "2025-06-02",
		Status:   "duty",
		CheckIn:  "09:00",
		CheckOut: "18:30",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[api.RecordDTO](t, resp)
	require.NotNil(t, got.TotalHours)
	require.NotNil(t, got.OTHours)
	assert.True(t, got.TotalHours.Equal(decimal.RequireFromString("9.5")))
	assert.True(t, got.OTHours.Equal(decimal.RequireFromString("1.5")))
}

func TestRecords_UnknownStatusRejected(t *testing.T) {
	srv := newTestServer(t)
	saveTestEmployee(t, srv)

	resp := doJSON(t, srv, http.MethodPost, "/api/employees/emp-1/records", api.UpsertRecordRequest{
		Date:   "2025-06-02",
		Status: "vacation",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecords_MalformedPunchRejected(t *testing.T) {
	srv := newTestServer(t)
	saveTestEmployee(t, srv)

	resp := doJSON(t, srv, http.MethodPost, "/api/employees/emp-1/records", api.UpsertRecordRequest{
		Date:     "2025-06-02",
		Status:   "duty",
		CheckIn:  "9am",
		CheckOut: "18:30",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecords_LastWriterWins(t *testing.T) {
	srv := newTestServer(t)
	saveTestEmployee(t, srv)

	resp := doJSON(t, srv, http.MethodPost, "/api/employees/emp-1/records", api.UpsertRecordRequest{
		Date: "2025-06-02", Status: "duty", CheckIn: "09:00", CheckOut: "18:30"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/employees/emp-1/records", api.UpsertRecordRequest{
		Date: "2025-06-02", Status: "sick_leave"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/employees/emp-1/records?month=2025-06", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records := decode[[]api.RecordDTO](t, resp)
	require.Len(t, records, 1)
	assert.Equal(t, "sick_leave", records[0].Status)
	assert.Empty(t, records[0].CheckIn)
	assert.Nil(t, records[0].TotalHours)
}

// =============================================================================
// PAYROLL REPORTING
// =============================================================================

func TestPayroll_EndToEnd(t *testing.T) {
	// GIVEN: A 30000/month employee (26 working days) with 20 duty days,
	//        2 absences and 1 half day in June 2025
	// WHEN: The payroll summary is requested
	// THEN: 2.5 deduction days against the 1153.85 daily rate yield
	//       deductions of 2884.62 and a net salary of 27115

	srv := newTestServer(t)
	saveTestEmployee(t, srv)

	day := 2
	post := func(status string) {
		resp := doJSON(t, srv, http.MethodPost, "/api/employees/emp-1/records", api.UpsertRecordRequest{
			Date:   fmt.Sprintf("2025-06-%02d", day),
			Status: status,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		day++
	}
	for i := 0; i < 20; i++ {
		post("duty")
	}
	post("absent")
	post("absent")
	post("half_day")

	resp := doJSON(t, srv, http.MethodGet, "/api/employees/emp-1/payroll?month=2025-06", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[api.PayrollSummaryDTO](t, resp)
	assert.Equal(t, "2025-06", got.Month)
	assert.Equal(t, 20, got.PresentDays)
	assert.Equal(t, 2, got.AbsentDays)
	assert.Equal(t, 1, got.HalfDays)
	assert.True(t, got.DeductionDays.Equal(decimal.RequireFromString("2.5")), got.DeductionDays.String())
	assert.True(t, got.Deductions.Equal(decimal.RequireFromString("2884.62")), got.Deductions.String())
	assert.True(t, got.DailyRate.Equal(decimal.RequireFromString("1153.85")), got.DailyRate.String())
	assert.True(t, got.NetSalary.Equal(decimal.NewFromInt(27115)), got.NetSalary.String())
}

func TestPayroll_MissingMonthParam(t *testing.T) {
	srv := newTestServer(t)
	saveTestEmployee(t, srv)

	resp := doJSON(t, srv, http.MethodGet, "/api/employees/emp-1/payroll", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// REGISTER AND LEAVE REPORTING
// =============================================================================

func TestRegister_InfersDefaults(t *testing.T) {
	// GIVEN: A Sunday-off employee, a holiday on June 16, one explicit record
	// WHEN: The June register is requested
	// THEN: Every day of the month appears; Sundays and the holiday are
	//       inferred, the explicit record is not

	srv := newTestServer(t)
	saveTestEmployee(t, srv)

	resp := doJSON(t, srv, http.MethodPost, "/api/holidays", api.CreateHolidayRequest{
		Date: "2025-06-16", Name: "Founders Day"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/employees/emp-1/records", api.UpsertRecordRequest{
		Date: "2025-06-02", Status: "duty", CheckIn: "09:00", CheckOut: "17:00"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/employees/emp-1/register?month=2025-06", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entries := decode[[]api.RegisterEntryDTO](t, resp)
	require.Len(t, entries, 30)

	byDate := map[string]api.RegisterEntryDTO{}
	for _, e := range entries {
		byDate[e.Date] = e
	}

	assert.Equal(t, "duty", byDate["2025-06-02"].Status)
	assert.False(t, byDate["2025-06-02"].Inferred)
	require.NotNil(t, byDate["2025-06-02"].Record)

	// 2025-06-01 is a Sunday
	assert.Equal(t, "weekly_off", byDate["2025-06-01"].Status)
	assert.True(t, byDate["2025-06-01"].Inferred)

	assert.Equal(t, "holiday", byDate["2025-06-16"].Status)
	assert.True(t, byDate["2025-06-16"].Inferred)

	assert.Equal(t, "", byDate["2025-06-03"].Status, "unmarked weekday")
}

func TestLeaveUsage_CountsAgainstQuotas(t *testing.T) {
	srv := newTestServer(t)
	saveTestEmployee(t, srv)

	for _, d := range []string{"2025-03-03", "2025-03-04"} {
		resp := doJSON(t, srv, http.MethodPost, "/api/employees/emp-1/records", api.UpsertRecordRequest{
			Date: d, Status: "sick_leave"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp := doJSON(t, srv, http.MethodPost, "/api/employees/emp-1/records", api.UpsertRecordRequest{
		Date: "2025-09-10", Status: "paid_leave"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/api/employees/emp-1/leave-usage?year=2025", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	usage := decode[[]api.LeaveUsageDTO](t, resp)
	byStatus := map[string]api.LeaveUsageDTO{}
	for _, u := range usage {
		byStatus[u.Status] = u
	}

	assert.Equal(t, 2, byStatus["sick_leave"].Used)
	assert.Equal(t, 4, byStatus["sick_leave"].Remaining)
	assert.Equal(t, 1, byStatus["paid_leave"].Used)
	assert.Equal(t, 11, byStatus["paid_leave"].Remaining)
	assert.Equal(t, 0, byStatus["casual_leave"].Used)
}
