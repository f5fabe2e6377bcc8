package consignment

import (
	"testing"

	"github.com/Veraticus/cashiering/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(t *testing.T, text string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(text)
	if err != nil {
		t.Fatalf("bad amount %q: %v", text, err)
	}
	return d
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, money(t, want).Equal(got), "want %s, got %s", want, got)
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.True(t, totals.TotalOwed.IsZero())
	assert.True(t, totals.TotalHammerPrice.IsZero())
	assert.True(t, totals.TotalFees.IsZero())
	assertAmount(t, "10000", totals.BidderDeposit)
	assertAmount(t, "5000", totals.EscrowAmount)
	assert.True(t, totals.Credits.IsZero())
	assert.Zero(t, totals.ItemCount)

	f := totals.Formatted()
	assert.Equal(t, FormattedTotals{
		TotalOwed:        "$0.00",
		TotalHammerPrice: "$0.00",
		TotalFees:        "$0.00",
		BidderDeposit:    "$10,000.00",
		EscrowAmount:     "$5,000.00",
		Credits:          "$0.00",
	}, f)
}

func TestComputeTotals(t *testing.T) {
	items := []model.ConsignmentItem{
		{
			Key:              "1",
			HammerPrice:      money(t, "1000.10"),
			Commission:       money(t, "100"),
			DocumentationFee: money(t, "25.50"),
			TaxFee:           money(t, "80.00"),
			Total:            money(t, "1205.60"),
		},
		{
			Key:              "2",
			HammerPrice:      money(t, "0.20"),
			Commission:       money(t, "0.10"),
			DocumentationFee: decimal.Zero,
			TaxFee:           money(t, "0.01"),
			Total:            money(t, "999"),
		},
	}

	totals := ComputeTotals(items)

	assertAmount(t, "2204.60", totals.TotalOwed)
	assertAmount(t, "1000.30", totals.TotalHammerPrice)
	assertAmount(t, "205.61", totals.TotalFees)
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, "$2,204.60", totals.Formatted().TotalOwed)
}

func TestTotalsFor(t *testing.T) {
	view := []model.ConsignmentItem{
		{Key: "1", Total: decimal.NewFromInt(10)},
		{Key: "2", Total: decimal.NewFromInt(20)},
	}
	hidden := model.ConsignmentItem{Key: "3", Total: decimal.NewFromInt(300)}

	tests := []struct {
		name          string
		wantOwed      string
		selected      []model.ConsignmentItem
		view          []model.ConsignmentItem
		fromSelection bool
	}{
		{name: "no selection totals the view", view: view, wantOwed: "30"},
		{name: "selection wins over view", selected: []model.ConsignmentItem{hidden}, view: view, wantOwed: "300", fromSelection: true},
		{name: "selection with empty view", selected: []model.ConsignmentItem{view[0]}, wantOwed: "10", fromSelection: true},
		{name: "nothing at all", wantOwed: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalsFor(tt.selected, tt.view)
			assertAmount(t, tt.wantOwed, got.TotalOwed)
			assert.Equal(t, tt.fromSelection, got.FromSelection)
			assertAmount(t, "10000", got.BidderDeposit)
		})
	}
}

func TestBreakdownFor(t *testing.T) {
	it := model.ConsignmentItem{
		HammerPrice:      decimal.NewFromInt(20000),
		Commission:       decimal.NewFromInt(2000),
		DocumentationFee: decimal.NewFromInt(300),
		TaxFee:           decimal.NewFromInt(1600),
	}

	b := BreakdownFor(it)
	assertAmount(t, "1000", b.Shipping)
	assertAmount(t, "500", b.BuyerFee)
	assertAmount(t, "1600", b.Taxes)
	assertAmount(t, "25400", b.Sum())
}
