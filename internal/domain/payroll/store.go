package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"epms/internal/platform/querier"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ExistingDepartmentCodes(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.DB.Query(ctx, "SELECT department_code FROM department")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes[code] = struct{}{}
	}
	return codes, rows.Err()
}

func (s *Store) ExistingEmployeeNumbers(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := s.DB.Query(ctx, "SELECT employee_number FROM employee")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	numbers := make(map[int64]struct{})
	for rows.Next() {
		var number int64
		if err := rows.Scan(&number); err != nil {
			return nil, err
		}
		numbers[number] = struct{}{}
	}
	return numbers, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, dep Department) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO department (department_code, department_name, gross_salary)
    VALUES ($1, $2, $3)
  `, dep.DepartmentCode, dep.DepartmentName, dep.GrossSalary.Decimal)
	return TranslateStoreError(err)
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT department_code, department_name, gross_salary
    FROM department
    ORDER BY department_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var dep Department
		if err := rows.Scan(&dep.DepartmentCode, &dep.DepartmentName, &dep.GrossSalary.Decimal); err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

func (s *Store) UpdateDepartment(ctx context.Context, code string, dep Department) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE department
    SET department_name = $1, gross_salary = $2
    WHERE department_code = $3
  `, dep.DepartmentName, dep.GrossSalary.Decimal, code)
	if err != nil {
		return TranslateStoreError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDepartment detaches referencing employees through the FK's
// ON DELETE SET NULL rather than cascading.
func (s *Store) DeleteDepartment(ctx context.Context, code string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM department WHERE department_code = $1", code)
	if err != nil {
		return TranslateStoreError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (int64, error) {
	var number int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee (first_name, last_name, position, address, telephone, gender, hired_date, department_code)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING employee_number
  `,
		emp.FirstName, emp.LastName, emp.Position,
		nullIfEmpty(emp.Address), nullIfEmpty(emp.Telephone), nullIfEmpty(emp.Gender),
		nullIfEmpty(emp.HiredDate), nullIfEmpty(emp.DepartmentCode),
	).Scan(&number)
	if err != nil {
		return 0, TranslateStoreError(err)
	}
	return number, nil
}

const employeeColumns = `
    e.employee_number, e.first_name, e.last_name, e.position,
    COALESCE(e.address, ''), COALESCE(e.telephone, ''), COALESCE(e.gender, ''),
    COALESCE(to_char(e.hired_date, 'YYYY-MM-DD'), ''),
    COALESCE(e.department_code, ''), COALESCE(d.department_name, ''),
    e.created_at, e.updated_at
`

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employee e
    LEFT JOIN department d ON e.department_code = d.department_code
    ORDER BY e.last_name, e.first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, number int64) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employee e
    LEFT JOIN department d ON e.department_code = d.department_code
    WHERE e.employee_number = $1
  `, number)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) UpdateEmployee(ctx context.Context, number int64, emp Employee) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employee
    SET first_name = $1,
        last_name = $2,
        position = $3,
        address = $4,
        telephone = $5,
        gender = $6,
        hired_date = $7,
        department_code = $8,
        updated_at = now()
    WHERE employee_number = $9
  `,
		emp.FirstName, emp.LastName, emp.Position,
		nullIfEmpty(emp.Address), nullIfEmpty(emp.Telephone), nullIfEmpty(emp.Gender),
		nullIfEmpty(emp.HiredDate), nullIfEmpty(emp.DepartmentCode), number,
	)
	if err != nil {
		return TranslateStoreError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEmployee cascades deletion of the employee's salary records
// through the FK.
func (s *Store) DeleteEmployee(ctx context.Context, number int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employee WHERE employee_number = $1", number)
	if err != nil {
		return TranslateStoreError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateSalaryRecord(ctx context.Context, rec SalaryRecord) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO salary (employee_number, gross_salary, total_deduction, net_salary, month)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id
  `, rec.EmployeeNumber, rec.GrossSalary.Decimal, rec.TotalDeduction.Decimal, rec.NetSalary.Decimal, rec.Month).Scan(&id)
	if err != nil {
		return 0, TranslateStoreError(err)
	}
	return id, nil
}

func (s *Store) ListSalaryRecords(ctx context.Context) ([]SalaryRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT s.id, s.employee_number, s.gross_salary, s.total_deduction, s.net_salary, s.month, s.created_at,
           e.first_name, e.last_name, e.position, COALESCE(d.department_name, '')
    FROM salary s
    JOIN employee e ON s.employee_number = e.employee_number
    LEFT JOIN department d ON e.department_code = d.department_code
    ORDER BY s.month DESC, e.last_name, e.first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SalaryRecord
	for rows.Next() {
		var rec SalaryRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeNumber, &rec.GrossSalary.Decimal, &rec.TotalDeduction.Decimal, &rec.NetSalary.Decimal,
			&rec.Month, &rec.CreatedAt, &rec.FirstName, &rec.LastName, &rec.Position, &rec.DepartmentName,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) GetSalaryRecord(ctx context.Context, id int64) (SalaryRecord, error) {
	var rec SalaryRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_number, gross_salary, total_deduction, net_salary, month, created_at
    FROM salary
    WHERE id = $1
  `, id).Scan(&rec.ID, &rec.EmployeeNumber, &rec.GrossSalary.Decimal, &rec.TotalDeduction.Decimal, &rec.NetSalary.Decimal, &rec.Month, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return SalaryRecord{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) UpdateSalaryRecord(ctx context.Context, id int64, rec SalaryRecord) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE salary
    SET gross_salary = $1, total_deduction = $2, net_salary = $3, month = $4
    WHERE id = $5
  `, rec.GrossSalary.Decimal, rec.TotalDeduction.Decimal, rec.NetSalary.Decimal, rec.Month, id)
	if err != nil {
		return TranslateStoreError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSalaryRecord(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM salary WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Position,
		&emp.Address, &emp.Telephone, &emp.Gender, &emp.HiredDate,
		&emp.DepartmentCode, &emp.DepartmentName, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
