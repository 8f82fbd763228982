package shared

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// FormatCurrency renders amount with the ISO code of the currency, e.g.
// "USD 1,234.50", using the currency's standard number of decimals.
// Unknown codes fall back to "<CODE> <amount>" with two decimals; an empty
// code renders the bare amount.
func FormatCurrency(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return amount.StringFixed(2)
	}
	unit, err := currency.ParseISO(code)
	if err != nil || unit == (currency.Unit{}) {
		return code + " " + amount.StringFixed(2)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return unit.String() + " " + groupThousands(amount.StringFixed(int32(scale)))
}

// groupThousands inserts commas into the integer part of a plain decimal
// string such as "-1234567.50".
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
