package display

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with a currency symbol, locale-invariant.
type Formatter struct {
	printer *message.Printer
}

func NewFormatter() *Formatter {
	return &Formatter{
		printer: message.NewPrinter(language.English),
	}
}

// Currency formats the amount in the given ISO-4217 currency. Codes the
// currency table does not know fall back to an "amount CODE" rendering
// instead of failing; display formatting must never block a catalog.
func (f *Formatter) Currency(amount decimal.Decimal, currencyCode string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), strings.ToUpper(currencyCode))
	}

	return f.printer.Sprint(currency.NarrowSymbol(unit.Amount(amount.InexactFloat64())))
}
