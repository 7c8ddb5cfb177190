package billing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyPrefix precedes every rendered amount.
const CurrencyPrefix = "Rs."

// FormatCurrency renders d rounded to a whole amount with thousands
// separators, e.g. "Rs.1,500".
func FormatCurrency(d decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	return CurrencyPrefix + p.Sprintf("%d", d.Round(0).IntPart())
}
