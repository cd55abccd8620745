package tax

import "github.com/shopspring/decimal"

// NoTaxCalculator returns zero tax for all calculations.
// Used when the quotation has tax switched off.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a new no-tax calculator.
func NewNoTaxCalculator() Calculator {
	return &NoTaxCalculator{}
}

// CalculateTax always returns zero tax.
func (c *NoTaxCalculator) CalculateTax(params TaxParams) (*TaxResult, error) {
	return &TaxResult{
		Amount:    decimal.Zero,
		Breakdown: []TaxBreakdown{},
	}, nil
}
