// Package quote prices a quotation: line items, discount, tax and down
// payment in, consistent totals out. It also holds the editing session
// that owns that state while a user fills in the form.
package quote

import (
	"fmt"

	"github.com/dukerupert/cotizador/internal/tax"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Totals are the derived figures of a quotation. Amounts are kept in full
// precision; call Round or Display before showing them.
type Totals struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	TaxableBase       decimal.Decimal `json:"taxable_base"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	Total             decimal.Decimal `json:"total"`
	DownPaymentAmount decimal.Decimal `json:"down_payment_amount"`
	Balance           decimal.Decimal `json:"balance"`

	// Adjustments lists the inputs that were clamped or coerced.
	Adjustments []Adjustment `json:"adjustments,omitempty"`
}

// ComputeTotals prices a quotation.
//
// Order of operations: the discount comes off the subtotal, tax is charged
// on what remains, and the down payment is taken from the post-tax total.
// Out-of-range inputs are clamped and recorded in Totals.Adjustments; the
// function never fails and never rounds.
func ComputeTotals(items []LineItem, discount DiscountConfig, taxCfg TaxConfig, downPayment DownPaymentConfig) Totals {
	var t Totals

	subtotal := decimal.Zero
	for i, item := range items {
		qty, adj := lineValue(fmt.Sprintf("items[%d].quantity", i), item.Quantity)
		t.Adjustments = append(t.Adjustments, adj...)
		price, adj := lineValue(fmt.Sprintf("items[%d].unit_price", i), item.UnitPrice)
		t.Adjustments = append(t.Adjustments, adj...)
		subtotal = subtotal.Add(qty.Mul(price))
	}
	t.Subtotal = subtotal

	t.DiscountAmount = decimal.Zero
	if discount.Enabled {
		amount, adj := portion("discount.value", discount.Kind, discount.Value, subtotal)
		t.DiscountAmount = amount
		t.Adjustments = append(t.Adjustments, adj...)
	}

	t.TaxableBase = subtotal.Sub(t.DiscountAmount)

	amount, adj := computeTax(taxCfg, t.TaxableBase)
	t.TaxAmount = amount
	t.Adjustments = append(t.Adjustments, adj...)

	t.Total = t.TaxableBase.Add(t.TaxAmount)

	t.DownPaymentAmount = decimal.Zero
	if downPayment.Enabled {
		amount, adj := portion("down_payment.value", downPayment.Kind, downPayment.Value, t.Total)
		t.DownPaymentAmount = amount
		t.Adjustments = append(t.Adjustments, adj...)
	}

	t.Balance = t.Total.Sub(t.DownPaymentAmount)

	return t
}

// lineValue coerces a quantity or price: out-of-range values and negatives become zero.
func lineValue(field string, d decimal.Decimal) (decimal.Decimal, []Adjustment) {
	switch {
	case !InRange(d):
		return decimal.Zero, []Adjustment{{Field: field, Reason: ReasonInvalidInput}}
	case d.IsNegative():
		return decimal.Zero, []Adjustment{{Field: field, Reason: ReasonNegative}}
	}
	return d, nil
}

func computeTax(cfg TaxConfig, base decimal.Decimal) (decimal.Decimal, []Adjustment) {
	var adj []Adjustment

	calc := cfg.Calculator
	switch {
	case !cfg.Enabled:
		calc = tax.NewNoTaxCalculator()
	case calc == nil:
		rate := cfg.Rate
		if !InRange(rate) {
			adj = append(adj, Adjustment{Field: "tax.rate", Reason: ReasonInvalidInput})
			rate = decimal.Zero
		}
		if rate.IsNegative() {
			adj = append(adj, Adjustment{Field: "tax.rate", Reason: ReasonNegative})
			rate = decimal.Zero
		}
		if rate.GreaterThan(one) {
			adj = append(adj, Adjustment{Field: "tax.rate", Reason: ReasonPercentOutOfRange})
			rate = one
		}
		pc, err := tax.NewPercentageCalculator(rate)
		if err != nil {
			return decimal.Zero, append(adj, Adjustment{Field: "tax.rate", Reason: ReasonCalculatorError})
		}
		calc = pc
	}

	result, err := calc.CalculateTax(tax.TaxParams{TaxableBase: base})
	if err != nil || result == nil {
		return decimal.Zero, append(adj, Adjustment{Field: "tax", Reason: ReasonCalculatorError})
	}
	if result.Amount.IsNegative() {
		return decimal.Zero, append(adj, Adjustment{Field: "tax", Reason: ReasonNegative})
	}
	return result.Amount, adj
}

// Round returns the totals at currency precision.
//
// Each charged amount is rounded on its own and the dependent figures are
// rebuilt from the rounded values, so the displayed rows always add up:
// TaxableBase = Subtotal − DiscountAmount, Total = TaxableBase + TaxAmount
// and DownPaymentAmount + Balance = Total.
func (t Totals) Round() Totals {
	r := Totals{
		Subtotal:       RoundCurrency(t.Subtotal),
		DiscountAmount: RoundCurrency(t.DiscountAmount),
		TaxAmount:      RoundCurrency(t.TaxAmount),
		Adjustments:    t.Adjustments,
	}
	r.TaxableBase = r.Subtotal.Sub(r.DiscountAmount)
	r.Total = r.TaxableBase.Add(r.TaxAmount)
	r.DownPaymentAmount = decimal.Min(RoundCurrency(t.DownPaymentAmount), r.Total)
	r.Balance = r.Total.Sub(r.DownPaymentAmount)
	return r
}

// DisplayTotals holds every figure formatted for the preview pane.
type DisplayTotals struct {
	Subtotal          string `json:"subtotal"`
	DiscountAmount    string `json:"discount_amount"`
	TaxableBase       string `json:"taxable_base"`
	TaxAmount         string `json:"tax_amount"`
	Total             string `json:"total"`
	DownPaymentAmount string `json:"down_payment_amount"`
	Balance           string `json:"balance"`
}

// Display rounds the totals and formats them with symbol, e.g. "$580.00".
func (t Totals) Display(symbol string) DisplayTotals {
	r := t.Round()
	return DisplayTotals{
		Subtotal:          FormatMoney(symbol, r.Subtotal),
		DiscountAmount:    FormatMoney(symbol, r.DiscountAmount),
		TaxableBase:       FormatMoney(symbol, r.TaxableBase),
		TaxAmount:         FormatMoney(symbol, r.TaxAmount),
		Total:             FormatMoney(symbol, r.Total),
		DownPaymentAmount: FormatMoney(symbol, r.DownPaymentAmount),
		Balance:           FormatMoney(symbol, r.Balance),
	}
}
