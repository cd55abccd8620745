package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol prefixes every formatted amount.
const DefaultCurrencySymbol = "$"

// currencyPlaces is the precision money is shown with.
const currencyPlaces = 2

// Amounts outside these bounds are treated as malformed input.
const (
	maxIntegerDigits = 12  // up to 999,999,999,999
	minExponent      = -10 // ten decimal places
)

var hundred = decimal.NewFromInt(100)

// InRange reports whether d has at most twelve integer digits and at most ten
// decimal places. Arithmetic on larger exponents rescales to huge integers.
func InRange(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	exp := int(d.Exponent())
	return exp >= minExponent && d.NumDigits()+exp <= maxIntegerDigits
}

// ParseAmount reads a number typed into a form field. It accepts a leading
// currency symbol, spaces, thousands separators and a trailing percent sign.
// Empty, non-numeric or out-of-range text (see InRange) yields zero and
// ok=false; it never errors so the preview can be recomputed on every keystroke.
func ParseAmount(text string) (d decimal.Decimal, ok bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\t', '\u00a0':
			return -1
		}
		return r
	}, text)
	cleaned = strings.TrimSuffix(cleaned, "%")
	if cleaned == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || !InRange(d) {
		return decimal.Zero, false
	}
	return d, true
}

// RoundCurrency rounds half away from zero to two decimal places.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(currencyPlaces)
}

// FormatMoney renders d as symbol + fixed two decimals, e.g. "$580.00".
// Negative amounts render as "-$12.50".
func FormatMoney(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(currencyPlaces)
	}
	return symbol + d.StringFixed(currencyPlaces)
}

// FormatCurrency formats d with the default "$" symbol.
func FormatCurrency(d decimal.Decimal) string {
	return FormatMoney(DefaultCurrencySymbol, d)
}
