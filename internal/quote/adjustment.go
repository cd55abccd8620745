package quote

import (
	"fmt"
	"strings"

	"github.com/dukerupert/cotizador/internal/tax"
	"github.com/shopspring/decimal"
)

// AdjustmentKind says how a discount or down payment value is read.
type AdjustmentKind int

const (
	// Percentage reads the value as 0-100 percent of the base.
	Percentage AdjustmentKind = iota
	// FixedAmount reads the value as an absolute currency amount.
	FixedAmount
)

func (k AdjustmentKind) String() string {
	switch k {
	case Percentage:
		return "percentage"
	case FixedAmount:
		return "fixed"
	default:
		return fmt.Sprintf("AdjustmentKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k AdjustmentKind) MarshalText() ([]byte, error) {
	switch k {
	case Percentage, FixedAmount:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("invalid adjustment kind %d", int(k))
}

// UnmarshalText accepts the English names and the Spanish labels used by the form.
func (k *AdjustmentKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "percentage", "porcentaje", "%":
		*k = Percentage
	case "fixed", "monto", "fijo":
		*k = FixedAmount
	default:
		return fmt.Errorf("invalid adjustment kind %q", string(text))
	}
	return nil
}

// DiscountConfig is applied to the subtotal.
type DiscountConfig struct {
	Enabled bool            `json:"enabled"`
	Kind    AdjustmentKind  `json:"kind"`
	Value   decimal.Decimal `json:"value"`
}

// TaxConfig is applied to the taxable base.
type TaxConfig struct {
	Enabled bool `json:"enabled"`
	// Rate is a fraction: 0.16 means 16%.
	Rate decimal.Decimal `json:"rate"`
	// Calculator replaces the percentage calculator built from Rate.
	Calculator tax.Calculator `json:"-"`
}

// DownPaymentConfig is applied to the post-tax total.
type DownPaymentConfig struct {
	Enabled bool            `json:"enabled"`
	Kind    AdjustmentKind  `json:"kind"`
	Value   decimal.Decimal `json:"value"`
}

// AdjustmentReason names why an input was coerced.
type AdjustmentReason string

const (
	ReasonInvalidInput      AdjustmentReason = "invalid_input"
	ReasonNegative          AdjustmentReason = "negative"
	ReasonPercentOutOfRange AdjustmentReason = "percent_out_of_range"
	ReasonOverBase          AdjustmentReason = "over_base"
	ReasonCalculatorError   AdjustmentReason = "calculator_error"
)

// Adjustment records one input the calculator absorbed instead of failing.
type Adjustment struct {
	Field  string           `json:"field"`
	Reason AdjustmentReason `json:"reason"`
}

// Group returns the form section the field belongs to: "items",
// "discount", "tax" or "down_payment".
func (a Adjustment) Group() string {
	if i := strings.IndexAny(a.Field, "[."); i >= 0 {
		return a.Field[:i]
	}
	return a.Field
}

func (a Adjustment) String() string {
	return a.Field + ": " + string(a.Reason)
}

// portion resolves a discount or down payment against base, clamping the
// value so the result lies in [0, base].
func portion(field string, kind AdjustmentKind, value, base decimal.Decimal) (decimal.Decimal, []Adjustment) {
	var adj []Adjustment
	if !InRange(value) {
		return decimal.Zero, []Adjustment{{Field: field, Reason: ReasonInvalidInput}}
	}
	if value.IsNegative() {
		adj = append(adj, Adjustment{Field: field, Reason: ReasonNegative})
		value = decimal.Zero
	}

	if kind == FixedAmount {
		if value.GreaterThan(base) {
			adj = append(adj, Adjustment{Field: field, Reason: ReasonOverBase})
			return base, adj
		}
		return value, adj
	}

	if value.GreaterThan(hundred) {
		adj = append(adj, Adjustment{Field: field, Reason: ReasonPercentOutOfRange})
		value = hundred
	}
	return base.Mul(value).Shift(-2), adj
}
