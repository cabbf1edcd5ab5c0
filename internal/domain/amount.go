package domain

import "github.com/shopspring/decimal"

// Amount is a signed money value with exact decimal arithmetic.
//
// Stored collections are plain JSON in an uncontrolled local store, so
// decoding is forgiving: a value that fails to parse as a number decodes
// as zero instead of failing the whole read.
type Amount struct {
	decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// NewAmount parses a decimal string. Returns an error for non-numeric input.
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, err
	}
	return Amount{d}, nil
}

// AmountFromInt builds an amount from a whole number.
func AmountFromInt(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

// AmountFromFloat builds an amount from a float.
func AmountFromFloat(v float64) Amount {
	return Amount{decimal.NewFromFloat(v)}
}

// UnmarshalJSON decodes a JSON number or numeric string, coercing anything
// unparsable (including null) to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		a.Decimal = decimal.Decimal{}
		return nil
	}
	a.Decimal = d
	return nil
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{a.Decimal.Add(b.Decimal)}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{a.Decimal.Sub(b.Decimal)}
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return Amount{a.Decimal.Neg()}
}

// Equal reports exact numeric equality.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}
