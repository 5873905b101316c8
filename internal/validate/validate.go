// Package validate holds the field-level predicates shared by the
// payroll rules and the HTTP handlers. Every predicate is pure and
// total: bad input returns false, never an error or a panic.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	departmentCodeRe = regexp.MustCompile(`^[A-Za-z0-9_]{2,10}$`)
	phoneRe          = regexp.MustCompile(`^[0-9\s\-\(\)\+]+$`)
	dateRe           = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthRe          = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

var genders = []string{"Male", "Female", "Other"}

// String reports whether the trimmed length of value lies in [min, max].
func String(value string, min, max int) bool {
	trimmed := strings.TrimSpace(value)
	return len(trimmed) >= min && len(trimmed) <= max
}

// DecimalMoney reports whether value lies in [min, max] and carries at
// most precision fractional digits. The precision check inspects the
// decimal exponent, so a value parsed from "42500.005" fails at
// precision 2 even though it would survive float rounding.
func DecimalMoney(value, min, max decimal.Decimal, precision int32) bool {
	if value.LessThan(min) || value.GreaterThan(max) {
		return false
	}
	return value.Exponent() >= -precision
}

// MoneyString parses a wire-format amount without going through binary
// floating point. The boolean is false when the text is not numeric.
func MoneyString(value string) (decimal.Decimal, bool) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return parsed, true
}

// Integer reports whether value coerces to an integer within [min, max].
func Integer(value string, min, max int64) bool {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return false
	}
	return parsed >= min && parsed <= max
}

// Date reports whether value is a real calendar date in YYYY-MM-DD form.
// Overflowed days such as "2023-02-31" fail the parse, and the format
// round-trip guards against any normalization slipping through.
func Date(value string) bool {
	if !dateRe.MatchString(value) {
		return false
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return false
	}
	return parsed.Format("2006-01-02") == value
}

// Month reports whether value is a YYYY-MM month token with the year in
// [1900, 2100] and the month in [1, 12].
func Month(value string) bool {
	if !monthRe.MatchString(value) {
		return false
	}
	year, err := strconv.Atoi(value[:4])
	if err != nil {
		return false
	}
	month, err := strconv.Atoi(value[5:])
	if err != nil {
		return false
	}
	return year >= 1900 && year <= 2100 && month >= 1 && month <= 12
}

// DepartmentCode reports whether value is 2-10 alphanumeric or
// underscore characters.
func DepartmentCode(value string) bool {
	return departmentCodeRe.MatchString(value)
}

// Gender reports whether value is one of the fixed enumeration.
func Gender(value string) bool {
	for _, candidate := range genders {
		if value == candidate {
			return true
		}
	}
	return false
}

// Phone reports whether value is a plausible telephone number: only
// digits, spaces, dashes, parentheses and plus signs, at least 7
// characters once trimmed.
func Phone(value string) bool {
	if !phoneRe.MatchString(value) {
		return false
	}
	return len(strings.TrimSpace(value)) >= 7
}
