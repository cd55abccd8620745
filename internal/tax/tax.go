// Package tax computes the tax charged on a quotation's taxable base.
package tax

import "github.com/shopspring/decimal"

// DefaultName is the label used for the single tax line on a quotation.
const DefaultName = "IVA"

// DefaultRate is the Mexican IVA rate applied when none is configured.
var DefaultRate = decimal.RequireFromString("0.16")

// Calculator defines the interface for tax calculation.
// Implementations: PercentageCalculator, NoTaxCalculator, MockCalculator
type Calculator interface {
	// CalculateTax computes tax over the post-discount taxable base.
	// Amounts are returned in full precision; rounding is left to display.
	CalculateTax(params TaxParams) (*TaxResult, error)
}

// TaxParams contains all information needed for tax calculation.
type TaxParams struct {
	// TaxableBase is the subtotal after discount. Never negative.
	TaxableBase decimal.Decimal
}

// TaxResult contains the calculated tax amount and breakdown.
type TaxResult struct {
	Amount    decimal.Decimal
	Breakdown []TaxBreakdown
}

// TaxBreakdown represents one tax line on the quotation.
type TaxBreakdown struct {
	Name   string          // e.g., "IVA"
	Rate   decimal.Decimal // e.g., 0.16 for 16%
	Amount decimal.Decimal
}
