package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"epms/internal/app/server"
	"epms/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func startApp(t *testing.T) (*httptest.Server, *server.App) {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		DatabaseURL:   dbURL,
		JWTSecret:     "test-secret",
		Environment:   "test",
		SessionTTL:    time.Hour,
		RunMigrations: true,
		MigrationsDir: "../../../../migrations",
		MaxBodyBytes:  1048576,
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts, app
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response from %s %s: %v", method, url, err)
	}
	return resp.StatusCode, env
}

func registerAndLogin(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()

	creds := map[string]string{"username": "payroll_admin", "password": "ChangeMe123!"}
	status, _ := doJSON(t, client, http.MethodPost, baseURL+"/api/register-admin", "", creds)
	if status != http.StatusCreated && status != http.StatusForbidden {
		t.Fatalf("register-admin: unexpected status %d", status)
	}

	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/login", "", creds)
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d", status)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login returned no token: %v", err)
	}
	return data.Token
}

func TestPayrollJourney(t *testing.T) {
	ts, _ := startApp(t)
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)

	code := fmt.Sprintf("D%d", time.Now().UnixNano()%100_000_000)
	month := "2025-01"

	status, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/departments", token, map[string]any{
		"departmentCode": code,
		"departmentName": "IT Dept " + code,
		"grossSalary":    50000.00,
	})
	if status != http.StatusCreated {
		t.Fatalf("create department: status %d", status)
	}

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/employees", token, map[string]any{
		"firstName":      "Jane",
		"lastName":       "Doe",
		"position":       "Engineer",
		"departmentCode": code,
	})
	if status != http.StatusCreated {
		t.Fatalf("create employee: status %d", status)
	}
	var employee struct {
		EmployeeNumber int64 `json:"employeeNumber"`
	}
	if err := json.Unmarshal(env.Data, &employee); err != nil || employee.EmployeeNumber <= 0 {
		t.Fatalf("create employee returned no number: %v", err)
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/salaries", token, map[string]any{
		"employeeNumber": employee.EmployeeNumber,
		"grossSalary":    50000.00,
		"totalDeduction": 7500.00,
		"netSalary":      42500.00,
		"month":          month,
	})
	if status != http.StatusCreated {
		t.Fatalf("create salary: status %d", status)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/reports/monthly/"+month, token, nil)
	if status != http.StatusOK {
		t.Fatalf("monthly report: status %d", status)
	}
	var report struct {
		Rows []struct {
			LastName  string `json:"lastName"`
			NetSalary string `json:"netSalary"`
		} `json:"reportData"`
		Totals struct {
			NetSalary string `json:"netSalary"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Rows) == 0 {
		t.Fatal("expected at least one report row")
	}
	found := false
	for _, row := range report.Rows {
		if row.LastName == "Doe" && row.NetSalary == "42500.00" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Doe with net 42500.00 in report, got %+v", report.Rows)
	}
}

func TestSalaryDeductionExceedingGrossIsRejected(t *testing.T) {
	ts, _ := startApp(t)
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)

	code := fmt.Sprintf("E%d", time.Now().UnixNano()%100_000_000)
	status, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/departments", token, map[string]any{
		"departmentCode": code,
		"departmentName": "Ops Dept " + code,
		"grossSalary":    50000.00,
	})
	if status != http.StatusCreated {
		t.Fatalf("create department: status %d", status)
	}

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/employees", token, map[string]any{
		"firstName":      "Sam",
		"lastName":       "Reject",
		"position":       "Analyst",
		"departmentCode": code,
	})
	if status != http.StatusCreated {
		t.Fatalf("create employee: status %d", status)
	}
	var employee struct {
		EmployeeNumber int64 `json:"employeeNumber"`
	}
	if err := json.Unmarshal(env.Data, &employee); err != nil {
		t.Fatalf("decode employee: %v", err)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/salaries", token, map[string]any{
		"employeeNumber": employee.EmployeeNumber,
		"grossSalary":    50000.00,
		"totalDeduction": 60000.00,
		"netSalary":      0.00,
		"month":          "2025-02",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for excessive deduction, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %+v", env.Error)
	}
	if !bytes.Contains(env.Error.Details, []byte("DeductionExceedsGross")) {
		t.Fatalf("expected DeductionExceedsGross in details, got %s", env.Error.Details)
	}
}

func TestEmptyMonthReportIsNotAnError(t *testing.T) {
	ts, _ := startApp(t)
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/reports/monthly/1903-07", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for empty month, got %d", status)
	}

	var report struct {
		Rows   []json.RawMessage `json:"reportData"`
		Totals struct {
			GrossSalary string `json:"grossSalary"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(report.Rows))
	}
	if report.Totals.GrossSalary != "0.00" {
		t.Fatalf("expected zero gross total, got %s", report.Totals.GrossSalary)
	}
}

func TestSecondAdminRegistrationIsForbidden(t *testing.T) {
	ts, _ := startApp(t)
	client := ts.Client()
	registerAndLogin(t, client, ts.URL)

	status, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/register-admin", "", map[string]string{
		"username": "second_admin",
		"password": "AnotherPass1!",
	})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for second admin, got %d", status)
	}
}

func TestEndpointsRequireAuthentication(t *testing.T) {
	ts, _ := startApp(t)
	client := ts.Client()

	paths := []string{"/api/departments", "/api/employees", "/api/salaries", "/api/reports/monthly/2025-01"}
	for _, path := range paths {
		status, _ := doJSON(t, client, http.MethodGet, ts.URL+path, "", nil)
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token, got %d", path, status)
		}
	}
}

func TestInvalidMonthRejected(t *testing.T) {
	ts, _ := startApp(t)
	client := ts.Client()
	token := registerAndLogin(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/reports/monthly/2025-13", token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid month, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "invalid_month" {
		t.Fatalf("expected invalid_month error, got %+v", env.Error)
	}
}
