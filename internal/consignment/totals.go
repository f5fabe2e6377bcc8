package consignment

import (
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/shopspring/decimal"
)

// Ledger amounts with no backing source yet. They are reported as-is on every totals result.
var (
	PlaceholderBidderDeposit = decimal.NewFromInt(10000)
	PlaceholderEscrowAmount  = decimal.NewFromInt(5000)
	PlaceholderCredits       = decimal.Zero
)

// Totals aggregates the money fields of a set of items.
type Totals struct {
	TotalOwed        decimal.Decimal
	TotalHammerPrice decimal.Decimal
	TotalFees        decimal.Decimal
	BidderDeposit    decimal.Decimal
	EscrowAmount     decimal.Decimal
	Credits          decimal.Decimal
	ItemCount        int
	FromSelection    bool
}

// FormattedTotals is Totals rendered as currency text.
type FormattedTotals struct {
	TotalOwed        string `json:"total_owed"`
	TotalHammerPrice string `json:"total_hammer_price"`
	TotalFees        string `json:"total_fees"`
	BidderDeposit    string `json:"bidder_deposit"`
	EscrowAmount     string `json:"escrow_amount"`
	Credits          string `json:"credits"`
}

// ComputeTotals sums total, hammer price and fees over items.
func ComputeTotals(items []model.ConsignmentItem) Totals {
	t := Totals{
		TotalOwed:        decimal.Zero,
		TotalHammerPrice: decimal.Zero,
		TotalFees:        decimal.Zero,
		BidderDeposit:    PlaceholderBidderDeposit,
		EscrowAmount:     PlaceholderEscrowAmount,
		Credits:          PlaceholderCredits,
		ItemCount:        len(items),
	}
	for _, item := range items {
		t.TotalOwed = t.TotalOwed.Add(item.Total)
		t.TotalHammerPrice = t.TotalHammerPrice.Add(item.HammerPrice)
		t.TotalFees = t.TotalFees.Add(item.Fees())
	}
	return t
}

// TotalsFor totals the selection when it is non-empty and the visible view otherwise.
func TotalsFor(selected, view []model.ConsignmentItem) Totals {
	if len(selected) > 0 {
		t := ComputeTotals(selected)
		t.FromSelection = true
		return t
	}
	return ComputeTotals(view)
}

// Formatted renders every amount with a dollar sign and two decimals.
func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		TotalOwed:        FormatCurrency(t.TotalOwed),
		TotalHammerPrice: FormatCurrency(t.TotalHammerPrice),
		TotalFees:        FormatCurrency(t.TotalFees),
		BidderDeposit:    FormatCurrency(t.BidderDeposit),
		EscrowAmount:     FormatCurrency(t.EscrowAmount),
		Credits:          FormatCurrency(t.Credits),
	}
}

// Breakdown is the per-item cost sheet shown in the detail panel.
type Breakdown struct {
	HammerPrice      decimal.Decimal
	Commission       decimal.Decimal
	Taxes            decimal.Decimal
	Shipping         decimal.Decimal
	DocumentationFee decimal.Decimal
	BuyerFee         decimal.Decimal
}

// Detail placeholders until shipping quotes and buyer fee schedules are sourced per item.
var (
	PlaceholderShipping = decimal.NewFromInt(1000)
	PlaceholderBuyerFee = decimal.NewFromInt(500)
)

// BreakdownFor returns the cost sheet for one item.
func BreakdownFor(item model.ConsignmentItem) Breakdown {
	return Breakdown{
		HammerPrice:      item.HammerPrice,
		Commission:       item.Commission,
		Taxes:            item.TaxFee,
		Shipping:         PlaceholderShipping,
		DocumentationFee: item.DocumentationFee,
		BuyerFee:         PlaceholderBuyerFee,
	}
}

// Sum returns the sum of every line of the breakdown.
func (b Breakdown) Sum() decimal.Decimal {
	return decimal.Sum(b.HammerPrice, b.Commission, b.Taxes, b.Shipping, b.DocumentationFee, b.BuyerFee)
}
