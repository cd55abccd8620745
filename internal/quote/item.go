package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one billable row of a quotation.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal returns Quantity × UnitPrice in full precision.
// It depends only on this row.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// LineItemFromInput builds a row from the raw text of its three fields.
// Unparseable quantity or price text becomes zero.
func LineItemFromInput(description, quantity, unitPrice string) LineItem {
	q, _ := ParseAmount(quantity)
	p, _ := ParseAmount(unitPrice)
	return LineItem{
		Description: strings.TrimSpace(description),
		Quantity:    q,
		UnitPrice:   p,
	}
}
