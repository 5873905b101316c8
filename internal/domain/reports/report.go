// Package reports derives the monthly payroll report from persisted
// salary records. The aggregation is pure: it performs no I/O and the
// same input always yields byte-identical output.
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"epms/internal/domain/money"
)

// Row is one salary record joined with its employee and department
// context, as selected for a single month.
type Row struct {
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	Position       string       `json:"position"`
	DepartmentName string       `json:"departmentName"`
	GrossSalary    money.Amount `json:"grossSalary"`
	TotalDeduction money.Amount `json:"totalDeduction"`
	NetSalary      money.Amount `json:"netSalary"`
}

type Totals struct {
	GrossSalary    money.Amount `json:"grossSalary"`
	TotalDeduction money.Amount `json:"totalDeduction"`
	NetSalary      money.Amount `json:"netSalary"`
}

type MonthlyReport struct {
	Month  string `json:"month"`
	Rows   []Row  `json:"reportData"`
	Totals Totals `json:"totals"`
}

// BuildMonthlyReport orders the rows by department name, then employee
// last name, then first name (stable, case-sensitive), and sums the
// money columns with exact decimal addition. An empty input is a valid
// report with zero totals, not an error.
func BuildMonthlyReport(month string, rows []Row) MonthlyReport {
	ordered := make([]Row, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DepartmentName != ordered[j].DepartmentName {
			return ordered[i].DepartmentName < ordered[j].DepartmentName
		}
		if ordered[i].LastName != ordered[j].LastName {
			return ordered[i].LastName < ordered[j].LastName
		}
		return ordered[i].FirstName < ordered[j].FirstName
	})

	var gross, deduction, net decimal.Decimal
	for _, row := range ordered {
		gross = gross.Add(row.GrossSalary.Decimal)
		deduction = deduction.Add(row.TotalDeduction.Decimal)
		net = net.Add(row.NetSalary.Decimal)
	}
	totals := Totals{
		GrossSalary:    money.New(gross),
		TotalDeduction: money.New(deduction),
		NetSalary:      money.New(net),
	}

	return MonthlyReport{Month: month, Rows: ordered, Totals: totals}
}
