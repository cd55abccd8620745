package quote

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dukerupert/cotizador/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// lineRules mirrors LineItem with the rules a row must meet before the
// quotation can be approved.
type lineRules struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"positive"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"nonnegative"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Decimal rules compare signs exactly; no float conversion.
	_ = v.RegisterValidation("positive", decimalSign(func(sign int) bool { return sign > 0 }))
	_ = v.RegisterValidation("nonnegative", decimalSign(func(sign int) bool { return sign >= 0 }))

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func decimalSign(accept func(sign int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && accept(d.Sign())
	}
}

var ruleMessages = map[string]string{
	"required":    "is required",
	"positive":    "must be greater than 0",
	"nonnegative": "cannot be negative",
}

// Validate checks that a quotation is complete enough to approve. It does
// not affect pricing: ComputeTotals clamps the same inputs Validate rejects.
// The returned error is a *domain.ValidationError keyed by field path.
func Validate(items []LineItem, discount DiscountConfig, taxCfg TaxConfig, downPayment DownPaymentConfig) error {
	// The first message recorded for a field wins.
	var verr error
	fail := func(field, message string) {
		if _, seen := domain.GetValidationFields(verr)[field]; seen {
			return
		}
		if verr == nil {
			verr = domain.NewValidationError("quote.validate", field, message)
			return
		}
		verr = domain.AddFieldError(verr, field, message)
	}

	if len(items) == 0 {
		fail("items", "at least one line item is required")
	}

	for i, item := range items {
		row := lineRules{
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
		if !InRange(item.Quantity) {
			fail(fmt.Sprintf("items[%d].quantity", i), "is out of range")
		}
		if !InRange(item.UnitPrice) {
			fail(fmt.Sprintf("items[%d].unit_price", i), "is out of range")
		}
		err := validate.Struct(row)
		if err == nil {
			continue
		}
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return domain.Internal(err, "quote.validate", "failed to validate line items")
		}
		for _, fe := range errs {
			msg, known := ruleMessages[fe.Tag()]
			if !known {
				msg = "is invalid"
			}
			fail(fmt.Sprintf("items[%d].%s", i, fe.Field()), msg)
		}
	}

	totals := ComputeTotals(items, discount, taxCfg, downPayment)

	if discount.Enabled {
		if msg := checkPortion(discount.Kind, discount.Value, totals.Subtotal, "subtotal"); msg != "" {
			fail("discount.value", msg)
		}
	}
	if taxCfg.Enabled && taxCfg.Calculator == nil {
		rate := taxCfg.Rate
		if !InRange(rate) || rate.IsNegative() || rate.GreaterThan(one) {
			fail("tax.rate", "must be between 0 and 1")
		}
	}
	if downPayment.Enabled {
		if msg := checkPortion(downPayment.Kind, downPayment.Value, totals.Total, "total"); msg != "" {
			fail("down_payment.value", msg)
		}
	}

	return verr
}

func checkPortion(kind AdjustmentKind, value, base decimal.Decimal, baseName string) string {
	switch {
	case !InRange(value):
		return "is out of range"
	case value.IsNegative():
		return "cannot be negative"
	case kind == Percentage && value.GreaterThan(hundred):
		return "percentage cannot exceed 100"
	case kind == FixedAmount && value.GreaterThan(base):
		return "cannot exceed the " + baseName
	}
	return ""
}
