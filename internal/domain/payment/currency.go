package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 alphabetic code from the closed set this core
// understands. Anything outside the set is rejected at construction time.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCHF Currency = "CHF"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
)

// minorUnitExponents maps each known currency to its ISO 4217 minor-unit
// exponent. JPY has no minor unit.
var minorUnitExponents = map[Currency]int32{
	CurrencyUSD: 2,
	CurrencyEUR: 2,
	CurrencyGBP: 2,
	CurrencyJPY: 0,
	CurrencyCHF: 2,
	CurrencyAUD: 2,
	CurrencyCAD: 2,
}

// ParseCurrency normalizes a code to uppercase and checks it against the
// known set.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := minorUnitExponents[c]; !ok {
		return "", ErrUnsupportedCurrency
	}
	return c, nil
}

// Known reports whether the currency belongs to the recognized set.
func (c Currency) Known() bool {
	_, ok := minorUnitExponents[c]
	return ok
}

// String returns the uppercase alphabetic code.
func (c Currency) String() string { return string(c) }

// MinorUnits converts a major-unit amount to minor units, e.g. 100 USD to
// 10000 cents. The amount must land on an integral number of minor units.
func (c Currency) MinorUnits(amount decimal.Decimal) (int64, error) {
	exp, ok := minorUnitExponents[c]
	if !ok {
		return 0, ErrUnsupportedCurrency
	}
	minor := amount.Shift(exp)
	if !minor.IsInteger() {
		return 0, ErrInvalidInitialization
	}
	return minor.IntPart(), nil
}
