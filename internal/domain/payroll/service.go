package payroll

import "context"

// Service runs candidates through the consistency rules before handing
// them to the store. The rules see the current set of employee numbers
// and department codes; the database constraints remain the second line
// of defense and report through the same error taxonomy.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateDepartment(ctx context.Context, dep Department) (Department, error) {
	codes, err := s.store.ExistingDepartmentCodes(ctx)
	if err != nil {
		return Department{}, err
	}
	if errs := ValidateDepartment(dep, codes); len(errs) > 0 {
		return Department{}, errs
	}
	if err := s.store.CreateDepartment(ctx, dep); err != nil {
		return Department{}, err
	}
	return dep, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.ListDepartments(ctx)
}

func (s *Service) UpdateDepartment(ctx context.Context, code string, dep Department) error {
	dep.DepartmentCode = code
	// An update keeps its own code, so the duplicate check excludes it.
	codes, err := s.store.ExistingDepartmentCodes(ctx)
	if err != nil {
		return err
	}
	delete(codes, code)
	if errs := ValidateDepartment(dep, codes); len(errs) > 0 {
		return errs
	}
	return s.store.UpdateDepartment(ctx, code, dep)
}

func (s *Service) DeleteDepartment(ctx context.Context, code string) error {
	return s.store.DeleteDepartment(ctx, code)
}

func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	codes, err := s.store.ExistingDepartmentCodes(ctx)
	if err != nil {
		return Employee{}, err
	}
	if errs := ValidateEmployee(emp, codes, true); len(errs) > 0 {
		return Employee{}, errs
	}
	number, err := s.store.CreateEmployee(ctx, emp)
	if err != nil {
		return Employee{}, err
	}
	emp.EmployeeNumber = number
	return emp, nil
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *Service) GetEmployee(ctx context.Context, number int64) (Employee, error) {
	return s.store.GetEmployee(ctx, number)
}

func (s *Service) UpdateEmployee(ctx context.Context, number int64, emp Employee) error {
	codes, err := s.store.ExistingDepartmentCodes(ctx)
	if err != nil {
		return err
	}
	if errs := ValidateEmployee(emp, codes, true); len(errs) > 0 {
		return errs
	}
	return s.store.UpdateEmployee(ctx, number, emp)
}

func (s *Service) DeleteEmployee(ctx context.Context, number int64) error {
	return s.store.DeleteEmployee(ctx, number)
}

func (s *Service) CreateSalaryRecord(ctx context.Context, rec SalaryRecord) (SalaryRecord, error) {
	employees, err := s.store.ExistingEmployeeNumbers(ctx)
	if err != nil {
		return SalaryRecord{}, err
	}
	validated, errs := ValidateSalaryRecord(rec, employees)
	if len(errs) > 0 {
		return SalaryRecord{}, errs
	}
	id, err := s.store.CreateSalaryRecord(ctx, validated)
	if err != nil {
		return SalaryRecord{}, err
	}
	validated.ID = id
	return validated, nil
}

func (s *Service) ListSalaryRecords(ctx context.Context) ([]SalaryRecord, error) {
	return s.store.ListSalaryRecords(ctx)
}

// UpdateSalaryRecord revalidates the stored record with the caller's
// amounts and month. The employee reference is not updatable; it is
// carried over from the stored row.
func (s *Service) UpdateSalaryRecord(ctx context.Context, id int64, rec SalaryRecord) (SalaryRecord, error) {
	current, err := s.store.GetSalaryRecord(ctx, id)
	if err != nil {
		return SalaryRecord{}, err
	}
	rec.ID = id
	rec.EmployeeNumber = current.EmployeeNumber

	employees, err := s.store.ExistingEmployeeNumbers(ctx)
	if err != nil {
		return SalaryRecord{}, err
	}
	validated, errs := ValidateSalaryRecord(rec, employees)
	if len(errs) > 0 {
		return SalaryRecord{}, errs
	}
	if err := s.store.UpdateSalaryRecord(ctx, id, validated); err != nil {
		return SalaryRecord{}, err
	}
	return validated, nil
}

func (s *Service) DeleteSalaryRecord(ctx context.Context, id int64) error {
	return s.store.DeleteSalaryRecord(ctx, id)
}
