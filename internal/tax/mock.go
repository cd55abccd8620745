package tax

import "github.com/shopspring/decimal"

// MockCalculator is a test implementation of Calculator.
type MockCalculator struct {
	CalculateTaxFunc func(params TaxParams) (*TaxResult, error)

	// Calls records every params value received, in order.
	Calls []TaxParams
}

// NewMockCalculator creates a new mock tax calculator for testing.
func NewMockCalculator() *MockCalculator {
	return &MockCalculator{}
}

// CalculateTax delegates to the configured function or returns a zero result.
func (m *MockCalculator) CalculateTax(params TaxParams) (*TaxResult, error) {
	m.Calls = append(m.Calls, params)
	if m.CalculateTaxFunc != nil {
		return m.CalculateTaxFunc(params)
	}
	return &TaxResult{Amount: decimal.Zero}, nil
}
