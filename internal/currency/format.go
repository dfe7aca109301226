package currency

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Symbol returns the display symbol for a currency code, falling back to
// the code itself for currencies the table does not know.
func Symbol(code string) string {
	if c := money.GetCurrency(code); c != nil && c.Grapheme != "" {
		return c.Grapheme
	}

	return code
}

// Format renders an amount with its currency symbol and two fraction
// digits, e.g. "¥714.29". The sign is dropped; callers prefix "+"/"-"
// according to the transaction type.
func Format(amount decimal.Decimal, code string) string {
	return fmt.Sprintf("%s%s", Symbol(code), amount.Abs().StringFixed(2))
}
