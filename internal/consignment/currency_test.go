package consignment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain number", input: "100", want: "100"},
		{name: "symbol and separators", input: "$1,234.50", want: "1234.50"},
		{name: "negative", input: "-$12.00", want: "-12"},
		{name: "surrounding text", input: "USD 99.99 total", want: "99.99"},
		{name: "empty", input: "", want: "0"},
		{name: "letters only", input: "n/a", want: "0"},
		{name: "two dots", input: "1.2.3", want: "0"},
		{name: "lone minus", input: "-", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCurrency(tt.input)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		amount decimal.Decimal
	}{
		{name: "zero", amount: decimal.Zero, want: "$0.00"},
		{name: "cents", amount: decimal.RequireFromString("0.5"), want: "$0.50"},
		{name: "hundreds", amount: decimal.NewFromInt(999), want: "$999.00"},
		{name: "thousands", amount: decimal.NewFromInt(10000), want: "$10,000.00"},
		{name: "millions", amount: decimal.RequireFromString("1234567.891"), want: "$1,234,567.89"},
		{name: "rounding carries into dollars", amount: decimal.RequireFromString("1234.995"), want: "$1,235.00"},
		{name: "negative", amount: decimal.RequireFromString("-5.25"), want: "-$5.25"},
		{name: "negative thousands", amount: decimal.RequireFromString("-12500"), want: "-$12,500.00"},
		{name: "negative rounds to zero", amount: decimal.RequireFromString("-0.001"), want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}
