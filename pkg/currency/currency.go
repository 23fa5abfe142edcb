package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter produces locale-aware currency strings for display.
// It is never used in computation - all internal math stays on decimals.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter creates a formatter for the given ISO 4217 currency code.
func NewFormatter(code string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, err
	}
	return &Formatter{
		unit:    unit,
		printer: message.NewPrinter(language.English),
	}, nil
}

// Code returns the ISO 4217 code of the formatter's currency.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders an amount with the currency symbol.
// The decimal-to-float conversion here is display-only.
func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Float64()
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(v)))
}
