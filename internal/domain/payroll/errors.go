package payroll

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a validation or consistency failure. The storage layer
// reports foreign-key and uniqueness rejections through the same kinds,
// so callers see one error surface regardless of where a violation was
// caught.
type Kind string

const (
	KindInvalidFormat         Kind = "InvalidFormat"
	KindInvalidAmount         Kind = "InvalidAmount"
	KindInvalidMonth          Kind = "InvalidMonth"
	KindDuplicateKey          Kind = "DuplicateKey"
	KindUnknownEmployee       Kind = "UnknownEmployee"
	KindUnknownDepartment     Kind = "UnknownDepartment"
	KindNetSalaryMismatch     Kind = "NetSalaryMismatch"
	KindDeductionExceedsGross Kind = "DeductionExceedsGross"
)

type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Kind)
}

// FieldErrors collects every failed check for a candidate record.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msg := e[0].Error()
	if len(e) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(e)-1)
	}
	return msg
}

// Has reports whether any collected error carries the given kind.
func (e FieldErrors) Has(kind Kind) bool {
	for _, fe := range e {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

// AsFieldErrors unwraps err into FieldErrors when possible.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	var fieldErr FieldError
	if errors.As(err, &fieldErr) {
		return FieldErrors{fieldErr}, true
	}
	return nil, false
}

// Postgres error codes the store translates into the taxonomy.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// TranslateStoreError remaps referential and uniqueness rejections
// raised by Postgres into the validation taxonomy. Violations the
// pre-checks missed, e.g. a department deleted between validation and
// insert, surface exactly like pre-check failures. Other errors pass
// through untouched.
func TranslateStoreError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "salary_employee_number_fkey":
			return FieldErrors{{
				Field:   "employeeNumber",
				Kind:    KindUnknownEmployee,
				Message: "employee does not exist",
			}}
		case "employee_department_code_fkey":
			return FieldErrors{{
				Field:   "departmentCode",
				Kind:    KindUnknownDepartment,
				Message: "department does not exist",
			}}
		}
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "department_pkey":
			return FieldErrors{{
				Field:   "departmentCode",
				Kind:    KindDuplicateKey,
				Message: "department code already exists",
			}}
		case "users_username_key", "users_single_admin":
			return FieldErrors{{
				Field:   "username",
				Kind:    KindDuplicateKey,
				Message: "registration is closed",
			}}
		}
	}
	return err
}
