package tax

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// PercentageCalculator calculates tax using a single fractional rate.
type PercentageCalculator struct {
	rate decimal.Decimal // e.g., 0.16 for 16%
	name string
}

// NewPercentageCalculator creates a new percentage-based tax calculator.
// The rate is a fraction and must lie in [0, 1].
func NewPercentageCalculator(rate decimal.Decimal) (*PercentageCalculator, error) {
	if rate.IsNegative() || rate.GreaterThan(one) {
		return nil, ErrInvalidTaxRate
	}
	return &PercentageCalculator{rate: rate, name: DefaultName}, nil
}

// Rate returns the configured fractional rate.
func (c *PercentageCalculator) Rate() decimal.Decimal {
	return c.rate
}

// CalculateTax computes TaxableBase × rate without rounding.
func (c *PercentageCalculator) CalculateTax(params TaxParams) (*TaxResult, error) {
	if params.TaxableBase.IsNegative() {
		return nil, ErrNegativeBase
	}

	amount := params.TaxableBase.Mul(c.rate)

	return &TaxResult{
		Amount: amount,
		Breakdown: []TaxBreakdown{
			{
				Name:   c.name,
				Rate:   c.rate,
				Amount: amount,
			},
		},
	}, nil
}
