package consignment

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ParseCurrency parses currency text such as "$1,234.50". Every character other
// than digits, '.' and '-' is dropped first; text that still fails to parse is zero.
func ParseCurrency(text string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, text)

	if cleaned == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatCurrency renders an amount as dollars with two decimals and thousands
// separators, e.g. "$10,000.00" or "-$5.25".
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	_, cents, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	whole := message.NewPrinter(language.English).Sprint(number.Decimal(rounded.Abs().IntPart()))
	return sign + "$" + whole + "." + cents
}
