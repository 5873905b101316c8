// Package money holds the exact decimal amount type shared by the
// payroll entities and the report aggregator.
package money

import "github.com/shopspring/decimal"

// Amount is a money value. Arithmetic happens on the embedded decimal;
// every JSON rendering carries exactly two fractional digits.
type Amount struct {
	decimal.Decimal
}

// New wraps d.
func New(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// FromString parses s without passing through binary floating point.
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare numeric forms.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}
