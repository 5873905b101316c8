package payroll

import (
	"strings"

	"github.com/shopspring/decimal"

	"epms/internal/validate"
)

// MaxAmount bounds every money field.
var MaxAmount = decimal.NewFromInt(1_000_000)

// netTolerance absorbs decimal rounding in client-entered values. It is
// a legacy-compatibility allowance, not a configuration knob.
var netTolerance = decimal.New(1, -2)

// ValidateSalaryRecord checks a candidate salary record against the
// cross-field arithmetic invariants and the supplied set of existing
// employee numbers. On success the candidate is returned unchanged: the
// engine never recomputes netSalary for the caller.
func ValidateSalaryRecord(candidate SalaryRecord, existingEmployees map[int64]struct{}) (SalaryRecord, FieldErrors) {
	var errs FieldErrors

	if candidate.EmployeeNumber <= 0 {
		errs = append(errs, FieldError{
			Field:   "employeeNumber",
			Kind:    KindUnknownEmployee,
			Message: "employee number must be a positive integer",
		})
	} else if _, ok := existingEmployees[candidate.EmployeeNumber]; !ok {
		errs = append(errs, FieldError{
			Field:   "employeeNumber",
			Kind:    KindUnknownEmployee,
			Message: "employee does not exist",
		})
	}

	grossOK := validate.DecimalMoney(candidate.GrossSalary.Decimal, decimal.Zero, MaxAmount, 2)
	if !grossOK {
		errs = append(errs, FieldError{
			Field:   "grossSalary",
			Kind:    KindInvalidAmount,
			Message: "gross salary must be between 0 and 1000000 with at most 2 decimal places",
		})
	}

	deduction := candidate.TotalDeduction.Decimal
	if deduction.IsNegative() || deduction.Exponent() < -2 {
		errs = append(errs, FieldError{
			Field:   "totalDeduction",
			Kind:    KindInvalidAmount,
			Message: "total deduction must be a non-negative amount with at most 2 decimal places",
		})
	} else if grossOK {
		// The deduction upper bound is the candidate's own gross salary,
		// checked only once the gross amount itself is valid.
		if !validate.DecimalMoney(deduction, decimal.Zero, candidate.GrossSalary.Decimal, 2) {
			errs = append(errs, FieldError{
				Field:   "totalDeduction",
				Kind:    KindDeductionExceedsGross,
				Message: "total deduction cannot exceed gross salary",
			})
		}
	} else if !validate.DecimalMoney(deduction, decimal.Zero, MaxAmount, 2) {
		errs = append(errs, FieldError{
			Field:   "totalDeduction",
			Kind:    KindInvalidAmount,
			Message: "total deduction must be between 0 and 1000000 with at most 2 decimal places",
		})
	}

	if !validate.DecimalMoney(candidate.NetSalary.Decimal, decimal.Zero, MaxAmount, 2) {
		errs = append(errs, FieldError{
			Field:   "netSalary",
			Kind:    KindInvalidAmount,
			Message: "net salary must be between 0 and 1000000 with at most 2 decimal places",
		})
	} else if grossOK {
		expected := candidate.GrossSalary.Sub(candidate.TotalDeduction.Decimal)
		if candidate.NetSalary.Sub(expected).Abs().GreaterThan(netTolerance) {
			errs = append(errs, FieldError{
				Field:   "netSalary",
				Kind:    KindNetSalaryMismatch,
				Message: "net salary must equal gross salary minus total deduction",
			})
		}
	}

	if !validate.Month(candidate.Month) {
		errs = append(errs, FieldError{
			Field:   "month",
			Kind:    KindInvalidMonth,
			Message: "month must be in YYYY-MM format",
		})
	}

	return candidate, errs
}

// ValidateEmployee checks the candidate's field formats and, when
// enforceReference is set, that its department code refers to a known
// department. Optional fields are validated only when present.
func ValidateEmployee(candidate Employee, existingDepartments map[string]struct{}, enforceReference bool) FieldErrors {
	var errs FieldErrors

	if !validate.String(candidate.FirstName, 1, 50) {
		errs = append(errs, FieldError{
			Field:   "firstName",
			Kind:    KindInvalidFormat,
			Message: "first name must be between 1 and 50 characters",
		})
	}
	if !validate.String(candidate.LastName, 1, 50) {
		errs = append(errs, FieldError{
			Field:   "lastName",
			Kind:    KindInvalidFormat,
			Message: "last name must be between 1 and 50 characters",
		})
	}
	if !validate.String(candidate.Position, 1, 100) {
		errs = append(errs, FieldError{
			Field:   "position",
			Kind:    KindInvalidFormat,
			Message: "position must be between 1 and 100 characters",
		})
	}
	if candidate.Address != "" && !validate.String(candidate.Address, 1, 255) {
		errs = append(errs, FieldError{
			Field:   "address",
			Kind:    KindInvalidFormat,
			Message: "address must be at most 255 characters",
		})
	}
	if candidate.Telephone != "" && !validate.Phone(candidate.Telephone) {
		errs = append(errs, FieldError{
			Field:   "telephone",
			Kind:    KindInvalidFormat,
			Message: "telephone must contain only digits, spaces, dashes, parentheses or plus signs and be at least 7 characters",
		})
	}
	if candidate.Gender != "" && !validate.Gender(candidate.Gender) {
		errs = append(errs, FieldError{
			Field:   "gender",
			Kind:    KindInvalidFormat,
			Message: "gender must be Male, Female or Other",
		})
	}
	if candidate.HiredDate != "" && !validate.Date(candidate.HiredDate) {
		errs = append(errs, FieldError{
			Field:   "hiredDate",
			Kind:    KindInvalidFormat,
			Message: "hired date must be a valid date in YYYY-MM-DD format",
		})
	}

	if code := strings.TrimSpace(candidate.DepartmentCode); code != "" {
		if !validate.DepartmentCode(code) {
			errs = append(errs, FieldError{
				Field:   "departmentCode",
				Kind:    KindInvalidFormat,
				Message: "department code must be 2-10 alphanumeric or underscore characters",
			})
		} else if enforceReference {
			if _, ok := existingDepartments[code]; !ok {
				errs = append(errs, FieldError{
					Field:   "departmentCode",
					Kind:    KindUnknownDepartment,
					Message: "department does not exist",
				})
			}
		}
	}

	return errs
}

// ValidateDepartment checks the candidate's code, name and baseline
// gross salary, and rejects codes already present in existingCodes.
func ValidateDepartment(candidate Department, existingCodes map[string]struct{}) FieldErrors {
	var errs FieldErrors

	code := strings.TrimSpace(candidate.DepartmentCode)
	if !validate.DepartmentCode(code) {
		errs = append(errs, FieldError{
			Field:   "departmentCode",
			Kind:    KindInvalidFormat,
			Message: "department code must be 2-10 alphanumeric or underscore characters",
		})
	} else if _, ok := existingCodes[code]; ok {
		errs = append(errs, FieldError{
			Field:   "departmentCode",
			Kind:    KindDuplicateKey,
			Message: "department code already exists",
		})
	}

	if !validate.String(candidate.DepartmentName, 2, 100) {
		errs = append(errs, FieldError{
			Field:   "departmentName",
			Kind:    KindInvalidFormat,
			Message: "department name must be between 2 and 100 characters",
		})
	}

	if !validate.DecimalMoney(candidate.GrossSalary.Decimal, decimal.Zero, MaxAmount, 2) {
		errs = append(errs, FieldError{
			Field:   "grossSalary",
			Kind:    KindInvalidAmount,
			Message: "gross salary must be between 0 and 1000000 with at most 2 decimal places",
		})
	}

	return errs
}
