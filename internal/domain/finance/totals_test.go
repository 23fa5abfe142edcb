package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaug/opshub-api/internal/domain/finance"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func gstCalculator() *finance.Calculator {
	return finance.NewCalculator(finance.DefaultLaborTaxRate)
}

// Reference document: two items at 18% GST, 20000 labor, 5% discount.
// itemsSubtotal 120000, +labor 140000, discount 7000, after discount 133000,
// item tax 20520 (18% of each item's discounted amount), labor tax 3420
// (labor taxed at the default 18% on its discounted amount), grand 156940.
func referenceItems() []finance.LineItem {
	return []finance.LineItem{
		{ID: "li-1", Description: "Compressor unit", Quantity: dec("1"), Unit: "pcs", UnitPrice: dec("80000"), TaxRate: dec("18")},
		{ID: "li-2", Description: "Condenser coil", Quantity: dec("1"), Unit: "pcs", UnitPrice: dec("40000"), TaxRate: dec("18")},
	}
}

func referenceParams() finance.CostParameters {
	return finance.CostParameters{LaborCost: dec("20000"), DiscountPercent: dec("5")}
}

func TestComputeTotals_ReferenceDocument(t *testing.T) {
	got, err := gstCalculator().ComputeTotals(referenceItems(), referenceParams(), true)
	require.NoError(t, err)

	assert.True(t, dec("120000").Equal(got.ItemsSubtotal), "items subtotal = %s", got.ItemsSubtotal)
	assert.True(t, dec("140000").Equal(got.SubtotalWithLabor), "subtotal with labor = %s", got.SubtotalWithLabor)
	assert.True(t, dec("7000").Equal(got.DiscountAmount), "discount = %s", got.DiscountAmount)
	assert.True(t, dec("133000").Equal(got.AmountAfterDiscount), "after discount = %s", got.AmountAfterDiscount)
	assert.True(t, dec("23940").Equal(got.TaxAmount), "tax = %s", got.TaxAmount)
	assert.True(t, dec("156940").Equal(got.GrandTotal), "grand total = %s", got.GrandTotal)
}

func TestComputeTotals_TaxDisabled(t *testing.T) {
	got, err := gstCalculator().ComputeTotals(referenceItems(), referenceParams(), false)
	require.NoError(t, err)

	assert.True(t, got.TaxAmount.IsZero(), "tax must be zero when tax is disabled, got %s", got.TaxAmount)
	assert.True(t, dec("133000").Equal(got.GrandTotal), "grand total = %s", got.GrandTotal)
}

func TestComputeTotals_ZeroLaborTaxRate(t *testing.T) {
	calc := finance.NewCalculator(decimal.Zero)

	got, err := calc.ComputeTotals(referenceItems(), referenceParams(), true)
	require.NoError(t, err)

	// Only the items are taxed: 114000 * 18% = 20520.
	assert.True(t, dec("20520").Equal(got.TaxAmount), "tax = %s", got.TaxAmount)
	assert.True(t, dec("153520").Equal(got.GrandTotal), "grand total = %s", got.GrandTotal)
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	got, err := gstCalculator().ComputeTotals(nil, finance.CostParameters{
		LaborCost:       decimal.Zero,
		DiscountPercent: decimal.Zero,
	}, true)
	require.NoError(t, err)

	assert.True(t, got.ItemsSubtotal.IsZero())
	assert.True(t, got.SubtotalWithLabor.IsZero())
	assert.True(t, got.DiscountAmount.IsZero())
	assert.True(t, got.AmountAfterDiscount.IsZero())
	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, got.GrandTotal.IsZero())
}

func TestComputeTotals_EmptyItemsWithLabor(t *testing.T) {
	got, err := gstCalculator().ComputeTotals(nil, finance.CostParameters{
		LaborCost:       dec("5000"),
		DiscountPercent: decimal.Zero,
	}, true)
	require.NoError(t, err)

	assert.True(t, dec("5000").Equal(got.SubtotalWithLabor))
	assert.True(t, dec("900").Equal(got.TaxAmount), "labor tax at 18%% = %s", got.TaxAmount)
	assert.True(t, dec("5900").Equal(got.GrandTotal))
}

func TestComputeTotals_Deterministic(t *testing.T) {
	calc := gstCalculator()

	first, err := calc.ComputeTotals(referenceItems(), referenceParams(), true)
	require.NoError(t, err)
	second, err := calc.ComputeTotals(referenceItems(), referenceParams(), true)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must yield identical output")
}

func TestComputeTotals_GrandTotalRounding(t *testing.T) {
	// 3 * 33.335 = 100.005 -> 100.005 * 12% tax disabled; check half-up on grand.
	items := []finance.LineItem{
		{ID: "li-1", Quantity: dec("3"), UnitPrice: dec("33.335"), TaxRate: dec("0")},
	}
	got, err := gstCalculator().ComputeTotals(items, finance.CostParameters{
		LaborCost:       dec("0.495"),
		DiscountPercent: decimal.Zero,
	}, false)
	require.NoError(t, err)

	// 100.005 + 0.495 = 100.50 exactly; half-up to 101.
	assert.True(t, dec("100.5").Equal(got.AmountAfterDiscount), "after discount = %s", got.AmountAfterDiscount)
	assert.True(t, dec("101").Equal(got.GrandTotal), "grand total = %s", got.GrandTotal)
}

func TestComputeTotals_IntermediatesNotRounded(t *testing.T) {
	items := []finance.LineItem{
		{ID: "li-1", Quantity: dec("1"), UnitPrice: dec("99.99"), TaxRate: dec("18")},
	}
	got, err := gstCalculator().ComputeTotals(items, finance.CostParameters{
		LaborCost:       decimal.Zero,
		DiscountPercent: dec("3"),
	}, true)
	require.NoError(t, err)

	// discount 99.99 * 3% = 2.9997, kept exact
	assert.True(t, dec("2.9997").Equal(got.DiscountAmount), "discount = %s", got.DiscountAmount)
	assert.True(t, dec("96.9903").Equal(got.AmountAfterDiscount), "after discount = %s", got.AmountAfterDiscount)
}

func TestComputeTotals_FullDiscount(t *testing.T) {
	got, err := gstCalculator().ComputeTotals(referenceItems(), finance.CostParameters{
		LaborCost:       dec("20000"),
		DiscountPercent: dec("100"),
	}, true)
	require.NoError(t, err)

	assert.True(t, got.AmountAfterDiscount.IsZero())
	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, got.GrandTotal.IsZero())
}

func TestComputeTotals_MonotonicInUnitPrice(t *testing.T) {
	calc := gstCalculator()

	base, err := calc.ComputeTotals(referenceItems(), referenceParams(), true)
	require.NoError(t, err)

	for _, bump := range []string{"0.01", "1", "500", "100000"} {
		items := referenceItems()
		items[0].UnitPrice = items[0].UnitPrice.Add(dec(bump))

		bumped, err := calc.ComputeTotals(items, referenceParams(), true)
		require.NoError(t, err)
		assert.True(t, bumped.GrandTotal.GreaterThanOrEqual(base.GrandTotal),
			"raising a unit price by %s must not lower the grand total (%s -> %s)",
			bump, base.GrandTotal, bumped.GrandTotal)
	}
}

func TestComputeTotals_ValidationErrors(t *testing.T) {
	calc := gstCalculator()

	tests := []struct {
		name   string
		items  []finance.LineItem
		params finance.CostParameters
	}{
		{
			name:   "negative quantity",
			items:  []finance.LineItem{{ID: "x", Quantity: dec("-1"), UnitPrice: dec("10"), TaxRate: dec("18")}},
			params: finance.CostParameters{},
		},
		{
			name:   "negative unit price",
			items:  []finance.LineItem{{ID: "x", Quantity: dec("1"), UnitPrice: dec("-10"), TaxRate: dec("18")}},
			params: finance.CostParameters{},
		},
		{
			name:   "tax rate above 100",
			items:  []finance.LineItem{{ID: "x", Quantity: dec("1"), UnitPrice: dec("10"), TaxRate: dec("101")}},
			params: finance.CostParameters{},
		},
		{
			name:   "negative tax rate",
			items:  []finance.LineItem{{ID: "x", Quantity: dec("1"), UnitPrice: dec("10"), TaxRate: dec("-1")}},
			params: finance.CostParameters{},
		},
		{
			name:   "negative labor cost",
			items:  nil,
			params: finance.CostParameters{LaborCost: dec("-1")},
		},
		{
			name:   "discount above 100",
			items:  nil,
			params: finance.CostParameters{DiscountPercent: dec("100.01")},
		},
		{
			name:   "negative discount",
			items:  nil,
			params: finance.CostParameters{DiscountPercent: dec("-5")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ComputeTotals(tt.items, tt.params, true)
			require.Error(t, err)
			assert.True(t, finance.IsValidationError(err), "want ValidationError, got %T", err)
			assert.Nil(t, got, "no partial breakdown on validation failure")
		})
	}
}

func TestComputeTotals_GrandTotalNonNegative(t *testing.T) {
	calc := gstCalculator()

	cases := []struct {
		labor    string
		discount string
	}{
		{"0", "0"},
		{"20000", "0"},
		{"0", "100"},
		{"20000", "100"},
		{"0.01", "99.99"},
	}
	for _, c := range cases {
		got, err := calc.ComputeTotals(referenceItems(), finance.CostParameters{
			LaborCost:       dec(c.labor),
			DiscountPercent: dec(c.discount),
		}, true)
		require.NoError(t, err)
		assert.False(t, got.GrandTotal.IsNegative(),
			"labor=%s discount=%s produced negative grand total %s", c.labor, c.discount, got.GrandTotal)
	}
}

func TestComputeTotals_FractionalQuantities(t *testing.T) {
	// 2.5 m of cable at 120/m, 12% GST, no labor, no discount.
	items := []finance.LineItem{
		{ID: "li-1", Description: "Copper cable", Quantity: dec("2.5"), Unit: "m", UnitPrice: dec("120"), TaxRate: dec("12")},
	}
	got, err := gstCalculator().ComputeTotals(items, finance.CostParameters{}, true)
	require.NoError(t, err)

	assert.True(t, dec("300").Equal(got.ItemsSubtotal))
	assert.True(t, dec("36").Equal(got.TaxAmount))
	assert.True(t, dec("336").Equal(got.GrandTotal))
}

func TestComputeTotals_MixedTaxRates(t *testing.T) {
	items := []finance.LineItem{
		{ID: "li-1", Quantity: dec("2"), UnitPrice: dec("1000"), TaxRate: dec("5")},
		{ID: "li-2", Quantity: dec("1"), UnitPrice: dec("3000"), TaxRate: dec("28")},
		{ID: "li-3", Quantity: dec("4"), UnitPrice: dec("250"), TaxRate: dec("0")},
	}
	got, err := finance.NewCalculator(decimal.Zero).ComputeTotals(items, finance.CostParameters{}, true)
	require.NoError(t, err)

	// 2000*5% + 3000*28% + 1000*0% = 100 + 840 = 940
	assert.True(t, dec("6000").Equal(got.ItemsSubtotal))
	assert.True(t, dec("940").Equal(got.TaxAmount), "tax = %s", got.TaxAmount)
	assert.True(t, dec("6940").Equal(got.GrandTotal))
}
