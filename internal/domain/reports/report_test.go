package reports

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epms/internal/domain/money"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func amt(s string) money.Amount {
	return money.New(dec(s))
}

func row(first, last, dept, gross, deduction, net string) Row {
	return Row{
		FirstName:      first,
		LastName:       last,
		Position:       "Engineer",
		DepartmentName: dept,
		GrossSalary:    amt(gross),
		TotalDeduction: amt(deduction),
		NetSalary:      amt(net),
	}
}

func TestBuildMonthlyReportOrdering(t *testing.T) {
	rows := []Row{
		row("Jane", "Doe", "IT", "100.00", "10.00", "90.00"),
		row("Amy", "Zimmer", "Finance", "100.00", "10.00", "90.00"),
		row("Adam", "Doe", "IT", "100.00", "10.00", "90.00"),
		row("Bob", "Avery", "IT", "100.00", "10.00", "90.00"),
	}

	report := BuildMonthlyReport("2025-01", rows)

	require.Len(t, report.Rows, 4)
	assert.Equal(t, "Zimmer", report.Rows[0].LastName, "Finance sorts before IT")
	assert.Equal(t, "Avery", report.Rows[1].LastName)
	assert.Equal(t, "Adam", report.Rows[2].FirstName, "first name breaks the last-name tie")
	assert.Equal(t, "Jane", report.Rows[3].FirstName)
}

func TestBuildMonthlyReportOrderingIsCaseSensitive(t *testing.T) {
	rows := []Row{
		row("A", "a", "IT", "1.00", "0", "1.00"),
		row("A", "B", "IT", "1.00", "0", "1.00"),
	}
	report := BuildMonthlyReport("2025-01", rows)
	// Uppercase sorts before lowercase in byte order.
	assert.Equal(t, "B", report.Rows[0].LastName)
}

func TestBuildMonthlyReportTotalsExact(t *testing.T) {
	// Many cent-sized rows: float accumulation would drift, decimal
	// addition must not.
	var rows []Row
	for i := 0; i < 1000; i++ {
		rows = append(rows, row("E", "E", "IT", "0.10", "0.01", "0.09"))
	}
	report := BuildMonthlyReport("2025-01", rows)
	assert.True(t, report.Totals.GrossSalary.Equal(dec("100.00")), "got %s", report.Totals.GrossSalary)
	assert.True(t, report.Totals.TotalDeduction.Equal(dec("10.00")), "got %s", report.Totals.TotalDeduction)
	assert.True(t, report.Totals.NetSalary.Equal(dec("90.00")), "got %s", report.Totals.NetSalary)
}

func TestBuildMonthlyReportEmpty(t *testing.T) {
	report := BuildMonthlyReport("2025-06", nil)
	assert.Empty(t, report.Rows)
	assert.True(t, report.Totals.GrossSalary.IsZero())
	assert.True(t, report.Totals.TotalDeduction.IsZero())
	assert.True(t, report.Totals.NetSalary.IsZero())
}

func TestMonthlyReportJSONMoneyHasTwoFractionDigits(t *testing.T) {
	report := BuildMonthlyReport("2025-01", []Row{
		row("Jane", "Doe", "IT", "50000", "7500", "42500"),
	})
	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"grossSalary":"50000.00"`)
	assert.Contains(t, string(raw), `"netSalary":"42500.00"`)
	assert.Contains(t, string(raw), `"totalDeduction":"7500.00"`)
}

func TestMonthlyReportJSONEmptyTotalsRenderAsZeroCents(t *testing.T) {
	raw, err := json.Marshal(BuildMonthlyReport("2025-06", nil))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"grossSalary":"0.00"`)
}

func TestBuildMonthlyReportIdempotent(t *testing.T) {
	rows := []Row{
		row("Jane", "Doe", "IT", "50000.00", "7500.00", "42500.00"),
		row("Bob", "Avery", "HR", "30000.00", "4500.00", "25500.00"),
	}
	first := BuildMonthlyReport("2025-01", rows)
	second := BuildMonthlyReport("2025-01", rows)
	assert.Equal(t, first, second)
}

func TestBuildMonthlyReportTotalsAssociative(t *testing.T) {
	partitionA := []Row{
		row("Jane", "Doe", "IT", "50000.00", "7500.00", "42500.00"),
		row("Amy", "Zimmer", "Finance", "61000.50", "9150.07", "51850.43"),
	}
	partitionB := []Row{
		row("Bob", "Avery", "HR", "30000.00", "4500.00", "25500.00"),
	}

	union := BuildMonthlyReport("2025-01", append(append([]Row{}, partitionA...), partitionB...))
	totalsA := BuildMonthlyReport("2025-01", partitionA).Totals
	totalsB := BuildMonthlyReport("2025-01", partitionB).Totals

	assert.True(t, union.Totals.GrossSalary.Equal(totalsA.GrossSalary.Add(totalsB.GrossSalary.Decimal)))
	assert.True(t, union.Totals.TotalDeduction.Equal(totalsA.TotalDeduction.Add(totalsB.TotalDeduction.Decimal)))
	assert.True(t, union.Totals.NetSalary.Equal(totalsA.NetSalary.Add(totalsB.NetSalary.Decimal)))
}
