package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// DefaultLaborTaxRate is the tax rate applied to labor cost when tax is
// enabled and the business has not configured its own rate.
var DefaultLaborTaxRate = decimal.NewFromInt(18)

// Calculator computes document totals. It is stateless apart from the labor
// tax convention: when tax is enabled, labor cost is taxed at LaborTaxRate
// on its discounted amount, the same way line items are. Businesses that do
// not tax labor configure a zero rate.
type Calculator struct {
	LaborTaxRate decimal.Decimal
}

// NewCalculator returns a Calculator with the given labor tax rate.
func NewCalculator(laborTaxRate decimal.Decimal) *Calculator {
	return &Calculator{LaborTaxRate: laborTaxRate}
}

// ComputeTotals maps line items and cost parameters to a TotalsBreakdown.
//
// The computation is pure and deterministic: no I/O, no randomness, identical
// input always yields identical output. The document-level discount is applied
// proportionally to each item before taxing, so
//
//	itemTax_i = qty_i * price_i * (1 - discount/100) * (taxRate_i / 100)
//
// Intermediate values stay exact; only the grand total is rounded, half-up
// to whole currency units.
//
// An empty item list is not an error: the breakdown is zero apart from any
// labor cost. Negative quantities, prices or rates, and percentages outside
// [0,100], are rejected with a ValidationError before anything is computed.
func (c *Calculator) ComputeTotals(items []LineItem, params CostParameters, taxEnabled bool) (*TotalsBreakdown, error) {
	if err := validateInputs(items, params); err != nil {
		return nil, err
	}

	itemsSubtotal := decimal.Zero
	for _, item := range items {
		itemsSubtotal = itemsSubtotal.Add(item.LineAmount())
	}

	subtotalWithLabor := itemsSubtotal.Add(params.LaborCost)
	discountAmount := subtotalWithLabor.Mul(params.DiscountPercent).Div(oneHundred)
	amountAfterDiscount := subtotalWithLabor.Sub(discountAmount)

	taxAmount := decimal.Zero
	if taxEnabled {
		discountFactor := decimal.NewFromInt(1).Sub(params.DiscountPercent.Div(oneHundred))
		for _, item := range items {
			itemTax := item.LineAmount().Mul(discountFactor).Mul(item.TaxRate).Div(oneHundred)
			taxAmount = taxAmount.Add(itemTax)
		}
		laborTax := params.LaborCost.Mul(discountFactor).Mul(c.LaborTaxRate).Div(oneHundred)
		taxAmount = taxAmount.Add(laborTax)
	}

	grandTotal := amountAfterDiscount.Add(taxAmount).Round(0)

	return &TotalsBreakdown{
		ItemsSubtotal:       itemsSubtotal,
		SubtotalWithLabor:   subtotalWithLabor,
		DiscountAmount:      discountAmount,
		AmountAfterDiscount: amountAfterDiscount,
		TaxAmount:           taxAmount,
		GrandTotal:          grandTotal,
	}, nil
}

func validateInputs(items []LineItem, params CostParameters) error {
	for i, item := range items {
		if item.Quantity.IsNegative() {
			return newValidationError(fmt.Sprintf("items[%d].quantity", i), "must not be negative")
		}
		if item.UnitPrice.IsNegative() {
			return newValidationError(fmt.Sprintf("items[%d].unit_price", i), "must not be negative")
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(oneHundred) {
			return newValidationError(fmt.Sprintf("items[%d].tax_rate", i), "must be between 0 and 100")
		}
	}
	if params.LaborCost.IsNegative() {
		return newValidationError("labor_cost", "must not be negative")
	}
	if params.DiscountPercent.IsNegative() || params.DiscountPercent.GreaterThan(oneHundred) {
		return newValidationError("discount_percent", "must be between 0 and 100")
	}
	return nil
}
