package reports

import (
	"context"

	"epms/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

// RowsForMonth selects every salary record for the month joined with
// its employee and department. Ordering is left to BuildMonthlyReport.
func (s *Store) RowsForMonth(ctx context.Context, month string) ([]Row, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.first_name, e.last_name, e.position, COALESCE(d.department_name, ''),
           s.gross_salary, s.total_deduction, s.net_salary
    FROM salary s
    JOIN employee e ON s.employee_number = e.employee_number
    LEFT JOIN department d ON e.department_code = d.department_code
    WHERE s.month = $1
  `, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.FirstName, &row.LastName, &row.Position, &row.DepartmentName,
			&row.GrossSalary.Decimal, &row.TotalDeduction.Decimal, &row.NetSalary.Decimal,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) MonthlyReport(ctx context.Context, month string) (MonthlyReport, error) {
	rows, err := s.store.RowsForMonth(ctx, month)
	if err != nil {
		return MonthlyReport{}, err
	}
	return BuildMonthlyReport(month, rows), nil
}
